package products

import (
	"context"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// ListFilter narrows and paginates product listings. Zero values mean
// "not filtered"; Page and PerPage are normalized by the repository.
type ListFilter struct {
	Page       int
	PerPage    int
	CategoryID int64
	SupplierID int64
	Search     string
	LowStock   bool
	Expiring   bool
}

type Repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Product, int64, error)
	ListBySupplier(ctx context.Context, supplierID int64) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	SetBarcode(ctx context.Context, id int64, barcode string) error
	AdjustQuantity(ctx context.Context, id int64, delta int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	Expiring(ctx context.Context, within time.Duration) ([]*models.Product, error)
	Expired(ctx context.Context) ([]*models.Product, error)
	LowStock(ctx context.Context, threshold int64) ([]*models.Product, error)
}
