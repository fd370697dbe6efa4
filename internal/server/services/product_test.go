package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

func newProductService(t *testing.T, p *fakeProductsRepo, images *fakeImageStore) *ProductService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewProductService(db, &fakeRepoManager{p: p}, images, logger)
}

func TestProductCreate_AssignsBarcode(t *testing.T) {
	repo := &fakeProductsRepo{bySKUErr: common.ErrorNotFound}
	images := &fakeImageStore{}
	s := newProductService(t, repo, images)

	created, err := s.Create(context.Background(), &models.Product{Name: "Milk 1L", SKU: "MILK-001", Price: 1.99})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Barcode == nil {
		t.Fatal("barcode not assigned")
	}
	if len(*created.Barcode) != 13 || !strings.HasSuffix(*created.Barcode, "17") {
		// product id 1 → 000000000001 + check digit 7
		t.Fatalf("unexpected barcode: %q", *created.Barcode)
	}
	if len(repo.setBarcodeCalls) != 1 {
		t.Fatalf("SetBarcode not called: %+v", repo.setBarcodeCalls)
	}
	if len(images.uploaded) != 1 {
		t.Fatalf("image not uploaded: %+v", images.uploaded)
	}
}

func TestProductCreate_UploadFailureDoesNotFailCreate(t *testing.T) {
	repo := &fakeProductsRepo{bySKUErr: common.ErrorNotFound}
	images := &fakeImageStore{uploadErr: errors.New("minio down")}
	s := newProductService(t, repo, images)

	created, err := s.Create(context.Background(), &models.Product{Name: "Milk 1L", SKU: "MILK-001"})
	if err != nil {
		t.Fatalf("Create must not fail on upload error, got %v", err)
	}
	if created.Barcode == nil {
		t.Fatal("barcode should still be assigned")
	}
}

func TestProductCreate_KeepsProvidedBarcode(t *testing.T) {
	repo := &fakeProductsRepo{bySKUErr: common.ErrorNotFound}
	images := &fakeImageStore{}
	s := newProductService(t, repo, images)

	code := "4006381333931"
	created, err := s.Create(context.Background(), &models.Product{Name: "Pens", SKU: "PEN-1", Barcode: &code})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Barcode == nil || *created.Barcode != code {
		t.Fatalf("provided barcode replaced: %+v", created.Barcode)
	}
	if len(repo.setBarcodeCalls) != 0 {
		t.Fatal("SetBarcode must not run when a barcode is provided")
	}
}

func TestProductCreate_InvalidBarcode(t *testing.T) {
	s := newProductService(t, &fakeProductsRepo{bySKUErr: common.ErrorNotFound}, &fakeImageStore{})

	code := "1234"
	_, err := s.Create(context.Background(), &models.Product{Name: "Pens", SKU: "PEN-1", Barcode: &code})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProductCreate_DuplicateSKU(t *testing.T) {
	s := newProductService(t, &fakeProductsRepo{
		bySKUOut: &models.Product{ID: 2, SKU: "MILK-001"},
	}, &fakeImageStore{})

	_, err := s.Create(context.Background(), &models.Product{Name: "Milk", SKU: "MILK-001"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestProductCreate_NegativePrice(t *testing.T) {
	s := newProductService(t, &fakeProductsRepo{bySKUErr: common.ErrorNotFound}, &fakeImageStore{})

	_, err := s.Create(context.Background(), &models.Product{Name: "Milk", SKU: "MILK-001", Price: -1})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProductUpdate_DuplicateSKUOtherProduct(t *testing.T) {
	s := newProductService(t, &fakeProductsRepo{
		bySKUOut: &models.Product{ID: 2, SKU: "MILK-001"},
	}, &fakeImageStore{})

	_, err := s.Update(context.Background(), &models.Product{ID: 1, Name: "Milk", SKU: "MILK-001"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestProductLowStock_DefaultThreshold(t *testing.T) {
	repo := &fakeProductsRepo{lowStockOut: []*models.Product{{ID: 1, Quantity: 2}}}
	s := newProductService(t, repo, &fakeImageStore{})

	got, err := s.LowStock(context.Background(), 0)
	if err != nil {
		t.Fatalf("LowStock error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected products: %+v", got)
	}
}
