package httphandler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sanghtth/product-dashboard/internal/adapter/httphandler"
	"github.com/sanghtth/product-dashboard/internal/core/domain"
	"github.com/sanghtth/product-dashboard/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products  []domain.Product
	listErr   error
	createErr error
	updateErr error
}

func (c *stubCatalog) ListProducts(context.Context) ([]domain.Product, error) {
	return c.products, c.listErr
}

func (c *stubCatalog) CreateProduct(
	_ context.Context, draft domain.ProductDraft,
) (domain.Product, error) {
	if c.createErr != nil {
		return domain.Product{}, c.createErr
	}
	return domain.Product{ID: 99, Title: draft.Title}, nil
}

func (c *stubCatalog) UpdateProduct(
	_ context.Context, id int64, draft domain.ProductDraft,
) (domain.Product, error) {
	if c.updateErr != nil {
		return domain.Product{}, c.updateErr
	}
	return domain.Product{ID: id, Title: draft.Title}, nil
}

func newRouter(t *testing.T, catalog *stubCatalog) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := service.New(catalog, nil, 10)
	require.NoError(t, d.Load(context.Background()))

	return httphandler.NewRouter(d, d, d)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func storeOf(n int) []domain.Product {
	ps := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		ps = append(ps, domain.Product{
			ID:          int64(i),
			Title:       "Product",
			Price:       float64(i) + 0.5,
			Description: "about product",
			Images:      []string{"http://img/p.png"},
		})
	}
	return ps
}

func TestIndex(t *testing.T) {
	t.Run("RendersRowsAndPagination", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(25)})

		w := get(r, "/")
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, "$1.50")
		assert.Contains(t, body, `class="badge bg-primary">N/A<`)
		assert.Contains(t, body, "/view/page/2", "pagination is rendered")
	})

	t.Run("SinglePageOmitsPagination", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := get(r, "/")
		assert.NotContains(t, w.Body.String(), "pagination")
	})

	t.Run("EmptyStore", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{})

		w := get(r, "/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "pagination")
	})
}

func TestViewActions(t *testing.T) {
	t.Run("SearchRedirectsHome", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(25)})

		w := postForm(r, "/view/search", url.Values{"query": {"product"}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("UnknownSortField", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := postForm(r, "/view/sort", url.Values{"field": {"weight"}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "alert=")
	})

	t.Run("InvalidPageSize", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := postForm(r, "/view/page-size", url.Values{"size": {"0"}})
		assert.Contains(t, w.Header().Get("Location"), "alert=")
	})

	t.Run("ReloadFailure", func(t *testing.T) {
		catalog := &stubCatalog{products: storeOf(3)}
		r := newRouter(t, catalog)

		catalog.listErr = errors.New("api down")
		w := postForm(r, "/view/reload", nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "alert=")
	})
}

func TestDetailPages(t *testing.T) {
	t.Run("DetailRendered", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := get(r, "/products/2")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "ID: 2")
		assert.Contains(t, body, "/products/2/edit")
	})

	t.Run("NotFound", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := get(r, "/products/42")
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "alert=")
	})

	t.Run("EditFormPrefilled", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := get(r, "/products/2/edit")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="2.5"`)
	})
}

func TestCreateWorkflow(t *testing.T) {
	form := url.Values{
		"title":       {"New Chair"},
		"price":       {"49.9"},
		"description": {"wooden"},
		"image":       {"http://img/c.png"},
	}

	t.Run("SuccessRedirectsWithNotice", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := postForm(r, "/products", form)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "notice=")
	})

	t.Run("FailureKeepsFormOpenWithValues", func(t *testing.T) {
		catalog := &stubCatalog{products: storeOf(3), createErr: errors.New("503")}
		r := newRouter(t, catalog)

		w := postForm(r, "/products", form)
		require.Equal(t, http.StatusOK, w.Code, "no redirect, the form page re-renders")

		body := w.Body.String()
		assert.Contains(t, body, `value="New Chair"`)
		assert.Contains(t, body, "failed to create product")
	})

	t.Run("UnparsablePrice", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		bad := url.Values{"title": {"X"}, "price": {"cheap"}}
		w := postForm(r, "/products", bad)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "price must be a number")
	})
}

func TestUpdateWorkflow(t *testing.T) {
	form := url.Values{
		"title": {"Renamed"},
		"price": {"10"},
	}

	t.Run("SuccessRedirectsWithNotice", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := postForm(r, "/products/2", form)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "notice=")
	})

	t.Run("FailureKeepsEditOpen", func(t *testing.T) {
		catalog := &stubCatalog{products: storeOf(3), updateErr: errors.New("400")}
		r := newRouter(t, catalog)

		w := postForm(r, "/products/2", form)
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, `value="Renamed"`)
		assert.Contains(t, body, "failed to update product")
	})
}

func TestExports(t *testing.T) {
	t.Run("CSVDownload", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := get(r, "/export/csv")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "products_page_1.csv")

		lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
		assert.Len(t, lines, 4)
	})

	t.Run("XLSXDownload", func(t *testing.T) {
		r := newRouter(t, &stubCatalog{products: storeOf(3)})

		w := get(r, "/export/xlsx")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "products_page_1.xlsx")
		assert.NotEmpty(t, w.Body.Bytes())
	})
}
