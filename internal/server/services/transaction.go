package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/dbx"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/transactions"
)

const defaultStatsWindow = 30 * 24 * time.Hour

// StockMovement is the outcome of a stock-in or stock-out operation.
type StockMovement struct {
	Transaction *models.Transaction `json:"transaction"`
	NewQuantity int64               `json:"new_quantity"`
	LowStock    bool                `json:"low_stock"`
}

// TransactionService records stock movements. The audit row and the product
// quantity change always commit in the same database transaction.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m}
}

func (s *TransactionService) List(ctx context.Context, filter transactions.ListFilter) ([]*models.Transaction, int64, error) {
	return s.repomanager.Transactions(s.db).List(ctx, filter)
}

// StockIn records an inbound delivery and increments the product quantity.
func (s *TransactionService) StockIn(ctx context.Context, productID, userID, quantity int64, notes string) (*StockMovement, error) {
	return s.move(ctx, productID, userID, models.TransactionIn, quantity, notes)
}

// StockOut records an outbound movement and decrements the product quantity.
// Taking out more than is on hand is rejected with ErrorInsufficientStock.
func (s *TransactionService) StockOut(ctx context.Context, productID, userID, quantity int64, notes string) (*StockMovement, error) {
	return s.move(ctx, productID, userID, models.TransactionOut, quantity, notes)
}

func (s *TransactionService) move(ctx context.Context, productID, userID int64, direction string, quantity int64, notes string) (*StockMovement, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", common.ErrorValidation)
	}

	// Existence check up front so a missing product is not reported as
	// insufficient stock.
	if _, err := s.repomanager.Products(s.db).GetByID(ctx, productID); err != nil {
		return nil, err
	}

	delta := quantity
	if direction == models.TransactionOut {
		delta = -quantity
	}

	movement := &StockMovement{}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		newQuantity, err := s.repomanager.Products(tx).AdjustQuantity(ctx, productID, delta)
		if err != nil {
			return err
		}
		transaction, err := s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			ProductID: productID,
			UserID:    userID,
			Type:      direction,
			Quantity:  quantity,
			Notes:     notes,
		})
		if err != nil {
			return err
		}
		movement.Transaction = transaction
		movement.NewQuantity = newQuantity
		movement.LowStock = newQuantity <= models.LowStockThreshold
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// Stats aggregates stock movement over [from, to]; a zero range defaults to
// the last 30 days.
func (s *TransactionService) Stats(ctx context.Context, from, to time.Time) (*models.TransactionStats, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.Add(-defaultStatsWindow)
	}
	return s.repomanager.Transactions(s.db).Stats(ctx, from, to)
}
