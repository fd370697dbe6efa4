package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shelfkeeper/shelfkeeper/internal/barcode"
	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
	"github.com/shelfkeeper/shelfkeeper/internal/server/storage"
)

// ImagePresigner issues presigned GET URLs for stored barcode images.
// Satisfied by storage.BarcodeStore.
type ImagePresigner interface {
	Upload(ctx context.Context, key string, data []byte) error
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// BarcodeService resolves scanned barcodes to products and serves barcode
// images via presigned URLs.
type BarcodeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImagePresigner
}

func NewBarcodeService(db *sql.DB, m repomanager.RepositoryManager, images ImagePresigner) *BarcodeService {
	return &BarcodeService{db: db, repomanager: m, images: images}
}

// Search validates the scanned code (including its check digit) and returns
// the matching product.
func (s *BarcodeService) Search(ctx context.Context, code string) (*models.Product, error) {
	if !barcode.Validate(code) {
		return nil, fmt.Errorf("%w: malformed ean-13 code", common.ErrorValidation)
	}
	return s.repomanager.Products(s.db).GetByBarcode(ctx, code)
}

// ImageURL renders the product's barcode, uploads it, and returns a
// presigned GET URL for the fresh image.
func (s *BarcodeService) ImageURL(ctx context.Context, productID int64) (string, error) {
	product, err := s.repomanager.Products(s.db).GetByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if product.Barcode == nil {
		return "", fmt.Errorf("%w: product has no barcode", common.ErrorNotFound)
	}

	png, err := barcode.RenderPNG(*product.Barcode, barcodeImageWidth, barcodeImageHeight)
	if err != nil {
		return "", err
	}
	key := storage.StorageKey(productID)
	if err := s.images.Upload(ctx, key, png); err != nil {
		return "", err
	}
	return s.images.PresignedGetURL(ctx, key)
}
