package httphandler

import (
	"math"
	"strconv"
	"strings"

	"github.com/sanghtth/product-dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	dashboardData struct {
		Rows          []productRow
		Query         string
		PageSize      int
		SortField     string
		SortDirection string
		Meta          domain.PageMeta
		TotalFiltered int
		Notice        string
		Alert         string
		Form          productForm
	}

	productRow struct {
		ID          int64
		Title       string
		PriceLabel  string
		Category    string
		Image       string
		Description string
	}

	detailData struct {
		Product productRow
	}

	editData struct {
		ID    int64
		Form  productForm
		Alert string
	}
)

// productForm carries the raw create/edit form fields. Price stays a
// string until coercion so a failed submit round-trips the entered
// text unchanged.
type productForm struct {
	Title       string `form:"title"`
	Price       string `form:"price"`
	Description string `form:"description"`
	Image       string `form:"image"`
}

func (f productForm) toDraft() (domain.ProductDraft, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return domain.ProductDraft{}, err
	}
	return domain.ProductDraft{
		Title:       f.Title,
		Price:       price,
		Description: f.Description,
		Image:       f.Image,
	}, nil
}

func formFromProduct(p domain.Product) productForm {
	return productForm{
		Title:       p.Title,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Description: p.Description,
		Image:       p.FirstImage(),
	}
}

func toRow(p domain.Product) productRow {
	return productRow{
		ID:          p.ID,
		Title:       p.Title,
		PriceLabel:  priceLabel(p.Price),
		Category:    p.CategoryName(),
		Image:       p.FirstImage(),
		Description: p.Description,
	}
}

// priceLabel formats the price as $ plus two decimal places.
func priceLabel(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "N/A"
	}
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

func toDashboardData(v domain.DashboardView) dashboardData {
	data := dashboardData{
		Query:         v.State.Query,
		PageSize:      v.State.PageSize,
		SortField:     string(v.State.SortField),
		SortDirection: string(v.State.SortDirection),
		Meta:          v.Meta,
		TotalFiltered: v.TotalFiltered,
	}
	for _, p := range v.Products {
		data.Rows = append(data.Rows, toRow(p))
	}
	return data
}
