package orders

import "time"

// Zone selects one of the two fixed delivery tariffs.
type Zone string

const (
	ZoneInside  Zone = "inside"
	ZoneOutside Zone = "outside"
)

const (
	ChargeInside  int64 = 150
	ChargeOutside int64 = 200
)

func DeliveryCharge(z Zone) (int64, bool) {
	switch z {
	case ZoneInside:
		return ChargeInside, true
	case ZoneOutside:
		return ChargeOutside, true
	}
	return 0, false
}

// GuestUser is the owner recorded on orders placed without a session.
const GuestUser = "guest"

type Item struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"` // snapshot at placement, never re-read
}

type Order struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CustomerName   string    `json:"customer_name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Items          []Item    `json:"items"`
	Subtotal       int64     `json:"subtotal"`
	DeliveryCharge int64     `json:"delivery_charge"`
	Total          int64     `json:"total"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	Date           string    `json:"date"` // display form of CreatedAt, e.g. "28 Aug 2026"
}

func DisplayDate(t time.Time) string { return t.Format("2 Jan 2006") }

func Subtotal(items []Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * it.Quantity
	}
	return sum
}
