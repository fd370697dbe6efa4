package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/barcode"
	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/products"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
	"github.com/shelfkeeper/shelfkeeper/internal/server/storage"
)

const (
	barcodeImageWidth  = 300
	barcodeImageHeight = 120

	defaultExpiringWindow = 7 * 24 * time.Hour
)

// ImageUploader stores rendered barcode images. Satisfied by
// storage.BarcodeStore.
type ImageUploader interface {
	Upload(ctx context.Context, key string, data []byte) error
}

// ProductService manages the product catalog. Creating a product without a
// barcode derives an EAN-13 from the new product id, renders it, and uploads
// the PNG; a failure there never fails the create itself.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageUploader
	logger      logging.Logger
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager, images ImageUploader, logger logging.Logger) *ProductService {
	return &ProductService{db: db, repomanager: m, images: images, logger: logger}
}

func (s *ProductService) List(ctx context.Context, filter products.ListFilter) ([]*models.Product, int64, error) {
	return s.repomanager.Products(s.db).List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByID(ctx, id)
}

func (s *ProductService) GetByBarcode(ctx context.Context, code string) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByBarcode(ctx, code)
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	repo := s.repomanager.Products(s.db)
	if _, err := repo.GetBySKU(ctx, product.SKU); err == nil {
		return nil, fmt.Errorf("%w: sku %q", common.ErrorAlreadyExists, product.SKU)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	created, err := repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	if created.Barcode == nil {
		s.assignBarcode(ctx, created)
	}
	return created, nil
}

// assignBarcode derives the EAN-13 number, stores it on the product, and
// uploads the rendered PNG. Errors are logged and swallowed.
func (s *ProductService) assignBarcode(ctx context.Context, product *models.Product) {
	number, err := barcode.NumberForProduct(product.ID)
	if err != nil {
		s.logger.Warn(ctx, "barcode derivation failed", "product_id", product.ID, "error", err)
		return
	}
	if err := s.repomanager.Products(s.db).SetBarcode(ctx, product.ID, number); err != nil {
		s.logger.Warn(ctx, "barcode assignment failed", "product_id", product.ID, "error", err)
		return
	}
	product.Barcode = &number

	png, err := barcode.RenderPNG(number, barcodeImageWidth, barcodeImageHeight)
	if err != nil {
		s.logger.Warn(ctx, "barcode rendering failed", "product_id", product.ID, "error", err)
		return
	}
	key := storage.StorageKey(product.ID)
	if err := s.images.Upload(ctx, key, png); err != nil {
		s.logger.Warn(ctx, "barcode image upload failed", "product_id", product.ID, "error", err)
	}
}

func (s *ProductService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	repo := s.repomanager.Products(s.db)
	if existing, err := repo.GetBySKU(ctx, product.SKU); err == nil && existing.ID != product.ID {
		return nil, fmt.Errorf("%w: sku %q", common.ErrorAlreadyExists, product.SKU)
	} else if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if err := repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, product.ID)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Products(s.db).Delete(ctx, id)
}

// Expiring lists products expiring within the given number of days
// (default 7).
func (s *ProductService) Expiring(ctx context.Context, days int) ([]*models.Product, error) {
	within := defaultExpiringWindow
	if days > 0 {
		within = time.Duration(days) * 24 * time.Hour
	}
	return s.repomanager.Products(s.db).Expiring(ctx, within)
}

func (s *ProductService) Expired(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).Expired(ctx)
}

// LowStock lists products at or below the threshold (default 10).
func (s *ProductService) LowStock(ctx context.Context, threshold int64) ([]*models.Product, error) {
	if threshold <= 0 {
		threshold = models.LowStockThreshold
	}
	return s.repomanager.Products(s.db).LowStock(ctx, threshold)
}

func validateProduct(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.SKU = strings.TrimSpace(product.SKU)
	if product.Name == "" || product.SKU == "" {
		return fmt.Errorf("%w: name and sku are required", common.ErrorValidation)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrorValidation)
	}
	if product.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", common.ErrorValidation)
	}
	if product.Barcode != nil && !barcode.Validate(*product.Barcode) {
		return fmt.Errorf("%w: invalid barcode", common.ErrorValidation)
	}
	return nil
}
