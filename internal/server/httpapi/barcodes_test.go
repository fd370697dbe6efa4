package httpapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

func TestBarcodeSearch(t *testing.T) {
	router, deps := newTestRouter()

	deps.barcodes.searchFn = func(ctx context.Context, code string) (*models.Product, error) {
		assert.Equal(t, "0000000000017", code)
		return &models.Product{ID: 1, Name: "Milk"}, nil
	}

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/barcode/search/0000000000017",
		accessToken(t, 1, models.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	product := envelope.Data.(map[string]any)["product"].(map[string]any)
	assert.Equal(t, "Milk", product["name"])
}

func TestBarcodeSearchInvalidCode(t *testing.T) {
	router, deps := newTestRouter()

	deps.barcodes.searchFn = func(ctx context.Context, code string) (*models.Product, error) {
		return nil, common.ErrorValidation
	}

	rec, _ := doJSON(t, router, http.MethodGet, "/api/barcode/search/notacode",
		accessToken(t, 1, models.RoleStaff), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBarcodeImage(t *testing.T) {
	router, deps := newTestRouter()

	deps.barcodes.imageURLFn = func(ctx context.Context, productID int64) (string, error) {
		assert.Equal(t, int64(5), productID)
		return "https://storage.example/barcodes/5/x.png", nil
	}

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/barcode/image/5",
		accessToken(t, 1, models.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope.Data.(map[string]any)
	assert.Contains(t, data["url"], "barcodes/5/")
}
