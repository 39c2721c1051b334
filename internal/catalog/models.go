package catalog

import "time"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"` // pre-discount display price
	Images        []string  `json:"images"`
	Description   []string  `json:"description"`
	Features      []string  `json:"features"`
	SKU           string    `json:"sku"`
	Category      string    `json:"category"` // bare string, integrity not enforced
	Stock         bool      `json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
