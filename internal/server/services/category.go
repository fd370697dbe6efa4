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

// CategoryService manages product categories.
type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	return s.repomanager.Categories(s.db).GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	repo := s.repomanager.Categories(s.db)
	if _, err := repo.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: category %q", common.ErrorAlreadyExists, name)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	return repo.Create(ctx, &models.Category{Name: name, Description: description})
}

func (s *CategoryService) Update(ctx context.Context, id int64, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	repo := s.repomanager.Categories(s.db)
	if existing, err := repo.GetByName(ctx, name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("%w: category %q", common.ErrorAlreadyExists, name)
	} else if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	category := &models.Category{ID: id, Name: name, Description: description}
	if err := repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. A category still referenced by products is
// refused with ErrorCategoryInUse.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	repo := s.repomanager.Categories(s.db)
	count, err := repo.ProductCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d products", common.ErrorCategoryInUse, count)
	}
	return repo.Delete(ctx, id)
}
