package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	transactionsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/transactions"
	"github.com/shelfkeeper/shelfkeeper/internal/server/services"
)

func TestListTransactions(t *testing.T) {
	router, deps := newTestRouter()

	var gotFilter transactionsrepo.ListFilter
	deps.transactions.listFn = func(ctx context.Context, filter transactionsrepo.ListFilter) ([]*models.Transaction, int64, error) {
		gotFilter = filter
		return []*models.Transaction{{ID: 1, Type: models.TransactionIn}}, 1, nil
	}

	rec, envelope := doJSON(t, router, http.MethodGet,
		"/api/transactions?type=IN&product_id=4&start_date=2026-08-01&end_date=2026-08-28",
		accessToken(t, 1, models.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "IN", gotFilter.Type)
	assert.Equal(t, int64(4), gotFilter.ProductID)
	assert.Equal(t, "2026-08-01", gotFilter.DateFrom.Format("2006-01-02"))
	// End date is inclusive.
	assert.Equal(t, "2026-08-28", gotFilter.DateTo.Format("2006-01-02"))
	assert.True(t, gotFilter.DateTo.After(gotFilter.DateFrom))

	data := envelope.Data.(map[string]any)
	assert.Len(t, data["transactions"], 1)
}

func TestListTransactionsBadDate(t *testing.T) {
	router, _ := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodGet,
		"/api/transactions?start_date=01-08-2026",
		accessToken(t, 1, models.RoleStaff), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
}

func TestStockIn(t *testing.T) {
	router, deps := newTestRouter()

	deps.transactions.stockInFn = func(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error) {
		assert.Equal(t, int64(4), productID)
		assert.Equal(t, int64(42), userID)
		assert.Equal(t, int64(10), quantity)
		return &services.StockMovement{
			Transaction: &models.Transaction{ID: 1, ProductID: productID, Quantity: quantity, Type: models.TransactionIn},
			NewQuantity: 30,
		}, nil
	}

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/transactions/stock-in",
		accessToken(t, 42, models.RoleStaff), map[string]any{
			"product_id": 4, "quantity": 10, "notes": "weekly delivery",
		})
	require.Equal(t, http.StatusCreated, rec.Code)

	movement := envelope.Data.(map[string]any)["movement"].(map[string]any)
	assert.Equal(t, float64(30), movement["new_quantity"])
}

func TestStockOutInsufficient(t *testing.T) {
	router, deps := newTestRouter()

	deps.transactions.stockOutFn = func(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error) {
		return nil, common.ErrorInsufficientStock
	}

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/transactions/stock-out",
		accessToken(t, 1, models.RoleStaff), map[string]any{
			"product_id": 4, "quantity": 500,
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
}

func TestTransactionStats(t *testing.T) {
	router, deps := newTestRouter()

	var gotFrom, gotTo time.Time
	deps.transactions.statsFn = func(ctx context.Context, from, to time.Time) (*models.TransactionStats, error) {
		gotFrom, gotTo = from, to
		return &models.TransactionStats{TotalIn: 5, TotalOut: 2, QuantityIn: 100, QuantityOut: 40}, nil
	}

	rec, envelope := doJSON(t, router, http.MethodGet,
		"/api/transactions/stats?start_date=2026-08-01&end_date=2026-08-28",
		accessToken(t, 1, models.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "2026-08-01", gotFrom.Format("2006-01-02"))
	assert.Equal(t, "2026-08-28", gotTo.Format("2006-01-02"))

	stats := envelope.Data.(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(5), stats["total_in"])
	assert.Equal(t, float64(40), stats["quantity_out"])
}
