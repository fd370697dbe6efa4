package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// ProductInput is the create/update payload. ExpiryDate uses the YYYY-MM-DD
// form the server expects.
type ProductInput struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Barcode    *string `json:"barcode,omitempty"`
	Price      float64 `json:"price"`
	Quantity   int64   `json:"quantity"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
	SupplierID *int64  `json:"supplier_id,omitempty"`
}

type ListProductsOptions struct {
	Page       int
	PerPage    int
	CategoryID int64
	SupplierID int64
	Search     string
	LowStock   bool
	Expiring   bool
}

func (o ListProductsOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(o.CategoryID, 10))
	}
	if o.SupplierID > 0 {
		q.Set("supplier_id", strconv.FormatInt(o.SupplierID, 10))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.LowStock {
		q.Set("low_stock", "true")
	}
	if o.Expiring {
		q.Set("expiring", "true")
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

type productListResult struct {
	Products   []*models.Product `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

func (c *Client) ListProducts(ctx context.Context, opts ListProductsOptions) ([]*models.Product, *Pagination, error) {
	var out productListResult
	if err := c.do(ctx, http.MethodGet, "/api/products"+opts.query(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Products, &out.Pagination, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var out struct {
		Product *models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (c *Client) CreateProduct(ctx context.Context, input *ProductInput) (*models.Product, error) {
	var out struct {
		Product *models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/products", input, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, input *ProductInput) (*models.Product, error) {
	var out struct {
		Product *models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), input, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}

func (c *Client) ExpiringProducts(ctx context.Context, days int) ([]*models.Product, error) {
	path := "/api/products/expiring"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	var out struct {
		Products []*models.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) ExpiredProducts(ctx context.Context) ([]*models.Product, error) {
	var out struct {
		Products []*models.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/expired", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) LowStockProducts(ctx context.Context, threshold int64) ([]*models.Product, error) {
	path := "/api/products/low-stock"
	if threshold > 0 {
		path += "?threshold=" + strconv.FormatInt(threshold, 10)
	}
	var out struct {
		Products []*models.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}
