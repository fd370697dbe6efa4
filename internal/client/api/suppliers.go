package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// SupplierInput is the create/update payload.
type SupplierInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (c *Client) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	var out struct {
		Suppliers []*models.Supplier `json:"suppliers"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/suppliers", nil, &out); err != nil {
		return nil, err
	}
	return out.Suppliers, nil
}

func (c *Client) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	var out struct {
		Supplier *models.Supplier `json:"supplier"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/suppliers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Supplier, nil
}

func (c *Client) CreateSupplier(ctx context.Context, input *SupplierInput) (*models.Supplier, error) {
	var out struct {
		Supplier *models.Supplier `json:"supplier"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/suppliers", input, &out); err != nil {
		return nil, err
	}
	return out.Supplier, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, id int64, input *SupplierInput) (*models.Supplier, error) {
	var out struct {
		Supplier *models.Supplier `json:"supplier"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/suppliers/%d", id), input, &out); err != nil {
		return nil, err
	}
	return out.Supplier, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/suppliers/%d", id), nil, nil)
}

func (c *Client) SupplierProducts(ctx context.Context, id int64) ([]*models.Product, error) {
	var out struct {
		Products []*models.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/suppliers/%d/products", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}
