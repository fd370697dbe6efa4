package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
)

// SupplierService manages suppliers and their product listings.
type SupplierService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSupplierService(db *sql.DB, m repomanager.RepositoryManager) *SupplierService {
	return &SupplierService{db: db, repomanager: m}
}

func (s *SupplierService) List(ctx context.Context) ([]*models.Supplier, error) {
	return s.repomanager.Suppliers(s.db).List(ctx)
}

func (s *SupplierService) Get(ctx context.Context, id int64) (*models.Supplier, error) {
	return s.repomanager.Suppliers(s.db).GetByID(ctx, id)
}

func (s *SupplierService) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	repo := s.repomanager.Suppliers(s.db)
	if _, err := repo.GetByName(ctx, supplier.Name); err == nil {
		return nil, fmt.Errorf("%w: supplier %q", common.ErrorAlreadyExists, supplier.Name)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	return repo.Create(ctx, supplier)
}

func (s *SupplierService) Update(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	repo := s.repomanager.Suppliers(s.db)
	if existing, err := repo.GetByName(ctx, supplier.Name); err == nil && existing.ID != supplier.ID {
		return nil, fmt.Errorf("%w: supplier %q", common.ErrorAlreadyExists, supplier.Name)
	} else if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if err := repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Suppliers(s.db).Delete(ctx, id)
}

// Products lists the catalog entries sourced from one supplier.
func (s *SupplierService) Products(ctx context.Context, supplierID int64) ([]*models.Product, error) {
	if _, err := s.repomanager.Suppliers(s.db).GetByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.repomanager.Products(s.db).ListBySupplier(ctx, supplierID)
}
