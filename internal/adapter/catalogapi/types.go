package catalogapi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sanghtth/product-dashboard/internal/core/domain"
)

type (
	product struct {
		ID          int64      `json:"id"`
		Title       string     `json:"title"`
		Price       priceValue `json:"price"`
		Description string     `json:"description"`
		Category    *category  `json:"category"`
		Images      []string   `json:"images"`
	}

	category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	draftBody struct {
		Title       string   `json:"title"`
		Price       float64  `json:"price"`
		Description string   `json:"description"`
		CategoryID  int64    `json:"categoryId"`
		Images      []string `json:"images"`
	}
)

// priceValue decodes a price arriving as a JSON number or a numeric
// string. Unparsable values become NaN, which the dashboard sorts
// last.
type priceValue float64

func (v *priceValue) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*v = priceValue(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*v = priceValue(math.NaN())
		return nil
	}
	*v = priceValue(f)
	return nil
}

func (p product) toDomain() domain.Product {
	dp := domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       float64(p.Price),
		Description: p.Description,
		Images:      p.Images,
	}
	if p.Category != nil {
		dp.Category = &domain.Category{ID: p.Category.ID, Name: p.Category.Name}
	}
	return dp
}

func toDomainList(ps []product) []domain.Product {
	ds := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		ds = append(ds, p.toDomain())
	}
	return ds
}

func toBody(draft domain.ProductDraft) draftBody {
	return draftBody{
		Title:       draft.Title,
		Price:       draft.Price,
		Description: draft.Description,
		CategoryID:  domain.DefaultCategoryID,
		Images:      []string{draft.Image},
	}
}

// StatusError reports a non-success response from the products API.
type StatusError struct {
	Code int
	Body string
}

func newStatusError(resp *resty.Response) StatusError {
	return StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
}

func (e StatusError) Error() string {
	return fmt.Sprintf("products api responded %d: %s", e.Code, e.Body)
}
