// Package transactions provides a PostgreSQL-backed repository for the
// stock movement audit trail.
package transactions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/dbx"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

const selectColumns = `
	SELECT t.id, t.product_id, t.user_id, t.type, t.quantity, t.notes, t.date,
	       p.name, u.username
	FROM transactions t
	JOIN products p ON p.id = t.product_id
	JOIN users u ON u.id = t.user_id
`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (product_id, user_id, type, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date
	`
	err := r.db.QueryRowContext(ctx, query,
		transaction.ProductID, transaction.UserID, transaction.Type,
		transaction.Quantity, transaction.Notes).
		Scan(&transaction.ID, &transaction.Date)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return transaction, nil
}

// List returns one page of transactions matching the filter, newest first,
// plus the total number of matching rows.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.Transaction, int64, error) {
	where, args := buildWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM transactions t` + where
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
	query := fmt.Sprintf("%s%s ORDER BY t.date DESC LIMIT $%d OFFSET $%d",
		selectColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		tr := &models.Transaction{}
		if err := rows.Scan(&tr.ID, &tr.ProductID, &tr.UserID, &tr.Type, &tr.Quantity,
			&tr.Notes, &tr.Date, &tr.ProductName, &tr.Username); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func buildWhere(filter ListFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Type != "" {
		add("t.type = $%d", filter.Type)
	}
	if filter.ProductID != 0 {
		add("t.product_id = $%d", filter.ProductID)
	}
	if filter.UserID != 0 {
		add("t.user_id = $%d", filter.UserID)
	}
	if !filter.DateFrom.IsZero() {
		add("t.date >= $%d", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		add("t.date <= $%d", filter.DateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Stats aggregates counts and quantities per direction over [from, to].
func (r *PostgresRepository) Stats(ctx context.Context, from, to time.Time) (*models.TransactionStats, error) {
	query := `
		SELECT
			count(*) FILTER (WHERE type = 'IN'),
			count(*) FILTER (WHERE type = 'OUT'),
			coalesce(sum(quantity) FILTER (WHERE type = 'IN'), 0),
			coalesce(sum(quantity) FILTER (WHERE type = 'OUT'), 0)
		FROM transactions
		WHERE date >= $1 AND date <= $2
	`
	stats := &models.TransactionStats{}
	err := r.db.QueryRowContext(ctx, query, from, to).
		Scan(&stats.TotalIn, &stats.TotalOut, &stats.QuantityIn, &stats.QuantityOut)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return stats, nil
}
