// Package cli is the interactive terminal front end for ShelfKeeper. It
// drives the typed API client over the authenticated gateway and keeps a
// durable session in a local SQLite file.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/shelfkeeper/shelfkeeper/internal/client/api"
	"github.com/shelfkeeper/shelfkeeper/internal/client/config"
	"github.com/shelfkeeper/shelfkeeper/internal/client/gateway"
	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// inventoryAPI is the slice of the API client the commands use. Tests
// substitute a fake.
type inventoryAPI interface {
	Register(ctx context.Context, username, email, password, role string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	CachedProfile(ctx context.Context) (*models.User, error)

	ListProducts(ctx context.Context, opts api.ListProductsOptions) ([]*models.Product, *api.Pagination, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, input *api.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ExpiringProducts(ctx context.Context, days int) ([]*models.Product, error)
	ExpiredProducts(ctx context.Context) ([]*models.Product, error)
	LowStockProducts(ctx context.Context, threshold int64) ([]*models.Product, error)

	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)

	StockIn(ctx context.Context, productID, quantity int64, notes string) (*api.StockMovement, error)
	StockOut(ctx context.Context, productID, quantity int64, notes string) (*api.StockMovement, error)
	TransactionStats(ctx context.Context, startDate, endDate string) (*models.TransactionStats, error)

	SearchBarcode(ctx context.Context, code string) (*models.Product, error)
	BarcodeImageURL(ctx context.Context, productID int64) (string, error)
}

type App struct {
	config   *config.Config
	api      inventoryAPI
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	repo, err := initDatabase(ctx, c.DatabaseFile)
	if err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	store := gateway.NewSQLiteStore(repo)
	gw := gateway.New(c.ServerBaseURL, store, &http.Client{Timeout: c.RequestTimeout}, logger)
	client := api.NewClient(gw, store)

	app := &App{config: c, api: client, reader: bufio.NewReader(os.Stdin)}

	// A failed token renewal ends the session; drop back to the login prompt.
	client.OnSessionExpired(func() {
		app.userName = ""
		printlnFn("Session expired, please log in again.")
	})

	// Restore the user name from the cached profile, if any.
	if user, err := client.CachedProfile(ctx); err == nil && user != nil {
		app.userName = user.Username
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}
