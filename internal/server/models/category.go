package models

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// ProductCount is populated on list queries only.
	ProductCount int64 `json:"product_count"`
}
