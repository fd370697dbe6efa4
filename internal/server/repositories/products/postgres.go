// Package products provides a PostgreSQL-backed repository for the product
// catalog, including filtered listings and stock adjustments.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/dbx"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// selectColumns joins category and supplier names into every product read.
const selectColumns = `
	SELECT p.id, p.name, p.sku, p.barcode, p.price, p.quantity, p.expiry_date,
	       p.category_id, p.supplier_id, p.created_at, p.updated_at,
	       c.name, s.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id
`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (name, sku, barcode, price, quantity, expiry_date, category_id, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.SKU, product.Barcode, product.Price, product.Quantity,
		product.ExpiryDate, product.CategoryID, product.SupplierID).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return product, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := selectColumns + ` WHERE p.id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := selectColumns + ` WHERE p.sku = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sku))
}

func (r *PostgresRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	query := selectColumns + ` WHERE p.barcode = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, barcode))
}

// List returns one page of products matching the filter plus the total
// number of matching rows.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.Product, int64, error) {
	where, args := buildWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM products p` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf("%s%s ORDER BY p.name LIMIT $%d OFFSET $%d",
		selectColumns, where, len(args)-1, len(args))

	items, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func buildWhere(filter ListFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.CategoryID != 0 {
		add("p.category_id = $%d", filter.CategoryID)
	}
	if filter.SupplierID != 0 {
		add("p.supplier_id = $%d", filter.SupplierID)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d)", n, n))
	}
	if filter.LowStock {
		add("p.quantity <= $%d", int64(models.LowStockThreshold))
	}
	if filter.Expiring {
		add("p.expiry_date IS NOT NULL AND p.expiry_date <= $%d", time.Now().AddDate(0, 0, 7))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) ListBySupplier(ctx context.Context, supplierID int64) ([]*models.Product, error) {
	query := selectColumns + ` WHERE p.supplier_id = $1 ORDER BY p.name`
	return r.queryMany(ctx, query, supplierID)
}

func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, sku = $2, barcode = $3, price = $4, quantity = $5,
		    expiry_date = $6, category_id = $7, supplier_id = $8, updated_at = now()
		WHERE id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		product.Name, product.SKU, product.Barcode, product.Price, product.Quantity,
		product.ExpiryDate, product.CategoryID, product.SupplierID, product.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// SetBarcode assigns a barcode to a product that does not have one yet.
func (r *PostgresRepository) SetBarcode(ctx context.Context, id int64, barcode string) error {
	query := `
		UPDATE products
		SET barcode = $1, updated_at = now()
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, barcode, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// AdjustQuantity applies a signed stock delta and returns the new quantity.
// A negative delta that would take the quantity below zero returns
// common.ErrorInsufficientStock. The caller is expected to run this inside
// a transaction together with the audit record insert.
func (r *PostgresRepository) AdjustQuantity(ctx context.Context, id int64, delta int64) (int64, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $1, updated_at = now()
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING quantity
	`
	var quantity int64
	if err := r.db.QueryRowContext(ctx, query, delta, id).Scan(&quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorInsufficientStock
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return quantity, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM products
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Expiring returns products whose expiry date falls between now and
// now+within, soonest first.
func (r *PostgresRepository) Expiring(ctx context.Context, within time.Duration) ([]*models.Product, error) {
	query := selectColumns + `
		WHERE p.expiry_date IS NOT NULL AND p.expiry_date >= $1 AND p.expiry_date <= $2
		ORDER BY p.expiry_date
	`
	now := time.Now()
	return r.queryMany(ctx, query, now, now.Add(within))
}

// Expired returns products whose expiry date has already passed.
func (r *PostgresRepository) Expired(ctx context.Context) ([]*models.Product, error) {
	query := selectColumns + `
		WHERE p.expiry_date IS NOT NULL AND p.expiry_date < $1
		ORDER BY p.expiry_date
	`
	return r.queryMany(ctx, query, time.Now())
}

// LowStock returns products at or below the given quantity threshold.
func (r *PostgresRepository) LowStock(ctx context.Context, threshold int64) ([]*models.Product, error) {
	query := selectColumns + `
		WHERE p.quantity <= $1
		ORDER BY p.quantity
	`
	return r.queryMany(ctx, query, threshold)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Barcode, &p.Price, &p.Quantity, &p.ExpiryDate,
			&p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName, &p.SupplierName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Barcode, &p.Price, &p.Quantity, &p.ExpiryDate,
		&p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName, &p.SupplierName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
