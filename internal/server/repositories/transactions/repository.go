package transactions

import (
	"context"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// ListFilter narrows and paginates transaction listings. Zero values mean
// "not filtered".
type ListFilter struct {
	Page      int
	PerPage   int
	Type      string
	ProductID int64
	UserID    int64
	DateFrom  time.Time
	DateTo    time.Time
}

type Repository interface {
	Create(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Transaction, int64, error)
	Stats(ctx context.Context, from, to time.Time) (*models.TransactionStats, error)
}
