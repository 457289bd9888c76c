// Package catalogapi is the remote gateway to the external products
// API. Every call is a single attempt: no retry, paging and filtering
// are never delegated to the server.
package catalogapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sanghtth/product-dashboard/internal/core/domain"
	"github.com/sanghtth/product-dashboard/internal/core/port"
)

var _ port.ProductCatalog = (*Client)(nil)

type Client struct {
	http *resty.Client
}

// New returns a client for the products API rooted at baseURL.
// A zero timeout means no timeout, a hung request then blocks its
// workflow but nothing else.
func New(baseURL string, timeout time.Duration) *Client {
	cl := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)
	if timeout > 0 {
		cl.SetTimeout(timeout)
	}
	return &Client{http: cl}
}

// ListProducts fetches the full product list.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "catalogapi.ListProducts"

	var ps []product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&ps).
		Get("/products")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: %w", op, newStatusError(resp))
	}

	return toDomainList(ps), nil
}

// CreateProduct posts a new product assembled from the draft.
func (c *Client) CreateProduct(
	ctx context.Context, draft domain.ProductDraft,
) (domain.Product, error) {
	const op = "catalogapi.CreateProduct"

	var p product
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(toBody(draft)).
		SetResult(&p).
		Post("/products")
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, newStatusError(resp))
	}

	return p.toDomain(), nil
}

// UpdateProduct puts the draft fields for an existing product id.
func (c *Client) UpdateProduct(
	ctx context.Context, id int64, draft domain.ProductDraft,
) (domain.Product, error) {
	const op = "catalogapi.UpdateProduct"

	var p product
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(toBody(draft)).
		SetResult(&p).
		Put(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, newStatusError(resp))
	}

	return p.toDomain(), nil
}
