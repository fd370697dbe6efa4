package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

type ListTransactionsOptions struct {
	Page      int
	PerPage   int
	Type      string
	ProductID int64
	UserID    int64
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

func (o ListTransactionsOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.ProductID > 0 {
		q.Set("product_id", strconv.FormatInt(o.ProductID, 10))
	}
	if o.UserID > 0 {
		q.Set("user_id", strconv.FormatInt(o.UserID, 10))
	}
	if o.StartDate != "" {
		q.Set("start_date", o.StartDate)
	}
	if o.EndDate != "" {
		q.Set("end_date", o.EndDate)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// StockMovement mirrors the server's stock adjustment result.
type StockMovement struct {
	Transaction *models.Transaction `json:"transaction"`
	NewQuantity int64               `json:"new_quantity"`
	LowStock    bool                `json:"low_stock"`
}

func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) ([]*models.Transaction, *Pagination, error) {
	var out struct {
		Transactions []*models.Transaction `json:"transactions"`
		Pagination   Pagination            `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/transactions"+opts.query(), nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Transactions, &out.Pagination, nil
}

func (c *Client) StockIn(ctx context.Context, productID, quantity int64, notes string) (*StockMovement, error) {
	return c.stock(ctx, "/api/transactions/stock-in", productID, quantity, notes)
}

func (c *Client) StockOut(ctx context.Context, productID, quantity int64, notes string) (*StockMovement, error) {
	return c.stock(ctx, "/api/transactions/stock-out", productID, quantity, notes)
}

func (c *Client) stock(ctx context.Context, path string, productID, quantity int64, notes string) (*StockMovement, error) {
	var out struct {
		Movement *StockMovement `json:"movement"`
	}
	err := c.do(ctx, http.MethodPost, path, map[string]any{
		"product_id": productID,
		"quantity":   quantity,
		"notes":      notes,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Movement, nil
}

func (c *Client) TransactionStats(ctx context.Context, startDate, endDate string) (*models.TransactionStats, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	path := "/api/transactions/stats"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out struct {
		Stats *models.TransactionStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}
