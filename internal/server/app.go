// Package server initializes and runs the inventory API server.
// It opens the database, applies migrations, wires services and handlers,
// and serves HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/config"
	"github.com/shelfkeeper/shelfkeeper/internal/server/httpapi"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
	"github.com/shelfkeeper/shelfkeeper/internal/server/services"
	"github.com/shelfkeeper/shelfkeeper/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	barcodeStore := storage.NewBarcodeStore(cfg)

	userService := services.NewUserService(db, rm, cfg)
	productService := services.NewProductService(db, rm, barcodeStore, logger)
	categoryService := services.NewCategoryService(db, rm)
	supplierService := services.NewSupplierService(db, rm)
	transactionService := services.NewTransactionService(db, rm)
	barcodeService := services.NewBarcodeService(db, rm, barcodeStore)

	handler := httpapi.NewHandler(userService, productService, categoryService,
		supplierService, transactionService, barcodeService, db, logger)
	router := httpapi.NewRouter(handler, httpapi.NewAuthMiddleware(cfg.SecretKey), cfg.CORSOrigins)
	server := httpapi.NewServer(cfg.EndpointAddr, router, logger)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
