package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var out struct {
		Categories []*models.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	var out struct {
		Category *models.Category `json:"category"`
	}
	err := c.do(ctx, http.MethodPost, "/api/categories", map[string]string{
		"name":        name,
		"description": description,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, name, description string) (*models.Category, error) {
	var out struct {
		Category *models.Category `json:"category"`
	}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), map[string]string{
		"name":        name,
		"description": description,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, nil)
}
