package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as published by the shop backend. The backend
// owns stock levels; this side never mutates them.
type Product struct {
	ID          string
	Name        string
	Category    string
	Description string
	Image       string
	Price       decimal.Decimal
	Quantity    int
}

func (p Product) InStock() bool {
	return p.Quantity > 0
}

// PriceLabel renders the price for display, two decimal places.
func (p Product) PriceLabel() string {
	return "$" + p.Price.StringFixed(2)
}
