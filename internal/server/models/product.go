package models

import "time"

// LowStockThreshold is the default quantity at or below which a product
// is flagged as running low.
const LowStockThreshold = 10

type Product struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	SKU        string     `json:"sku"`
	Barcode    *string    `json:"barcode"`
	Price      float64    `json:"price"`
	Quantity   int64      `json:"quantity"`
	ExpiryDate *time.Time `json:"expiry_date"`
	CategoryID *int64     `json:"category_id"`
	SupplierID *int64     `json:"supplier_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Joined names, populated on reads.
	CategoryName *string `json:"category_name"`
	SupplierName *string `json:"supplier_name"`
}

func (p *Product) IsLowStock() bool {
	return p.Quantity <= LowStockThreshold
}
