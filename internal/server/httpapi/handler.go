package httpapi

import (
	"context"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	productsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/products"
	transactionsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/transactions"
	"github.com/shelfkeeper/shelfkeeper/internal/server/services"
)

// Service interfaces consumed by the handlers. The concrete implementations
// live in the services package; tests substitute fakes.

type UserService interface {
	Register(ctx context.Context, username, email, password, role string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type ProductService interface {
	List(ctx context.Context, filter productsrepo.ListFilter) ([]*models.Product, int64, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	Expiring(ctx context.Context, days int) ([]*models.Product, error)
	Expired(ctx context.Context) ([]*models.Product, error)
	LowStock(ctx context.Context, threshold int64) ([]*models.Product, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, name, description string) (*models.Category, error)
	Update(ctx context.Context, id int64, name, description string) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type SupplierService interface {
	List(ctx context.Context) ([]*models.Supplier, error)
	Get(ctx context.Context, id int64) (*models.Supplier, error)
	Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	Delete(ctx context.Context, id int64) error
	Products(ctx context.Context, supplierID int64) ([]*models.Product, error)
}

type TransactionService interface {
	List(ctx context.Context, filter transactionsrepo.ListFilter) ([]*models.Transaction, int64, error)
	StockIn(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error)
	StockOut(ctx context.Context, productID, userID, quantity int64, notes string) (*services.StockMovement, error)
	Stats(ctx context.Context, from, to time.Time) (*models.TransactionStats, error)
}

type BarcodeService interface {
	Search(ctx context.Context, code string) (*models.Product, error)
	ImageURL(ctx context.Context, productID int64) (string, error)
}

// Pinger reports database liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler bundles all route handlers with their dependencies.
type Handler struct {
	users        UserService
	products     ProductService
	categories   CategoryService
	suppliers    SupplierService
	transactions TransactionService
	barcodes     BarcodeService
	db           Pinger
	logger       logging.Logger
}

func NewHandler(
	users UserService,
	products ProductService,
	categories CategoryService,
	suppliers SupplierService,
	transactions TransactionService,
	barcodes BarcodeService,
	db Pinger,
	logger logging.Logger,
) *Handler {
	return &Handler{
		users:        users,
		products:     products,
		categories:   categories,
		suppliers:    suppliers,
		transactions: transactions,
		barcodes:     barcodes,
		db:           db,
		logger:       logger.With("module", "httpapi"),
	}
}
