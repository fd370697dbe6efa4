package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

func newBarcodeService(t *testing.T, p *fakeProductsRepo, images *fakeImageStore) *BarcodeService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewBarcodeService(db, &fakeRepoManager{p: p}, images)
}

func TestBarcodeSearch_Success(t *testing.T) {
	s := newBarcodeService(t, &fakeProductsRepo{
		byBarcodeOut: &models.Product{ID: 11, Name: "Milk 1L"},
	}, &fakeImageStore{})

	p, err := s.Search(context.Background(), "4006381333931")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if p.ID != 11 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestBarcodeSearch_BadChecksum(t *testing.T) {
	s := newBarcodeService(t, &fakeProductsRepo{}, &fakeImageStore{})

	_, err := s.Search(context.Background(), "4006381333930")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBarcodeSearch_NoMatch(t *testing.T) {
	s := newBarcodeService(t, &fakeProductsRepo{byBarcodeErr: common.ErrorNotFound}, &fakeImageStore{})

	_, err := s.Search(context.Background(), "4006381333931")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestBarcodeImageURL_Success(t *testing.T) {
	code := "0000000000116"
	images := &fakeImageStore{presignURL: "http://signed.example/b.png"}
	s := newBarcodeService(t, &fakeProductsRepo{
		byIDOut: &models.Product{ID: 11, Barcode: &code},
	}, images)

	url, err := s.ImageURL(context.Background(), 11)
	if err != nil {
		t.Fatalf("ImageURL error: %v", err)
	}
	if url != "http://signed.example/b.png" {
		t.Fatalf("unexpected url: %q", url)
	}
	if len(images.uploaded) != 1 {
		t.Fatalf("image not uploaded: %+v", images.uploaded)
	}
}

func TestBarcodeImageURL_NoBarcode(t *testing.T) {
	s := newBarcodeService(t, &fakeProductsRepo{
		byIDOut: &models.Product{ID: 11},
	}, &fakeImageStore{})

	_, err := s.ImageURL(context.Background(), 11)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
