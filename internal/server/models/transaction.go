package models

import "time"

const (
	TransactionIn  = "IN"
	TransactionOut = "OUT"
)

type Transaction struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Notes     string    `json:"notes"`
	Date      time.Time `json:"date"`

	// Joined names, populated on reads.
	ProductName string `json:"product_name"`
	Username    string `json:"username"`
}

// TransactionStats aggregates stock movement over a date range.
type TransactionStats struct {
	TotalIn     int64 `json:"total_in"`
	TotalOut    int64 `json:"total_out"`
	QuantityIn  int64 `json:"quantity_in"`
	QuantityOut int64 `json:"quantity_out"`
}
