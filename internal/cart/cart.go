// Package cart keeps the per-session shopping bag in redis. The bag is
// read and written wholesale as one JSON value, and it expires with the
// session key; it is not durable state.
package cart

import "github.com/nobih83/bn-storefront/internal/catalog"

type Line struct {
	Product  catalog.Product `json:"product"` // copied by value at add time
	Quantity int64           `json:"quantity"`
}

func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Product.Price * l.Quantity
	}
	return sum
}

// Merge appends a line, or bumps the quantity when the product is already
// in the bag.
func Merge(lines []Line, p catalog.Product, qty int64) []Line {
	if qty < 1 {
		qty = 1
	}
	for i, l := range lines {
		if l.Product.ID == p.ID {
			lines[i].Quantity += qty
			return lines
		}
	}
	return append(lines, Line{Product: p, Quantity: qty})
}

// Adjust changes a line's quantity by delta, clamped to a minimum of 1.
// Unknown products are left alone.
func Adjust(lines []Line, productID string, delta int64) []Line {
	for i, l := range lines {
		if l.Product.ID == productID {
			q := l.Quantity + delta
			if q < 1 {
				q = 1
			}
			lines[i].Quantity = q
		}
	}
	return lines
}

func Remove(lines []Line, productID string) []Line {
	out := lines[:0]
	for _, l := range lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	return out
}
