package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// SearchBarcode looks a product up by its EAN-13 code.
func (c *Client) SearchBarcode(ctx context.Context, code string) (*models.Product, error) {
	var out struct {
		Product *models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/barcode/search/"+code, nil, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

// BarcodeImageURL returns a presigned URL for the product's barcode image.
func (c *Client) BarcodeImageURL(ctx context.Context, productID int64) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/barcode/image/%d", productID), nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
