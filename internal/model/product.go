package model

import "time"

// Product mirrors the 'products' table. Price is an integer in the
// currency's minor unit. Products are immutable after creation; no
// update or delete path exists.
type Product struct {
	ID        uint64    `json:"id"`        // products.id
	Name      string    `json:"name"`      // products.name
	Price     int64     `json:"price"`     // products.price (minor units, >= 0)
	CreatedAt time.Time `json:"createdAt"` // products.created_at
	UpdatedAt time.Time `json:"updatedAt"` // products.updated_at
}
