package catalog

import "github.com/shopspring/decimal"

// DemoProducts returns the static fallback catalog used when the shop
// backend is unreachable or not configured.
func DemoProducts() []Product {
	return []Product{
		{
			ID:          "demo1",
			Name:        "Blueberry Delta 8 Disposable",
			Category:    "Vapes",
			Price:       decimal.RequireFromString("24.99"),
			Description: "Smooth blueberry flavor disposable vape.",
			Image:       "",
			Quantity:    20,
		},
		{
			ID:          "demo2",
			Name:        `12" Glass Water Pipe`,
			Category:    "Glass",
			Price:       decimal.RequireFromString("39.99"),
			Description: "Clear glass water pipe with ice catcher.",
			Image:       "",
			Quantity:    8,
		},
		{
			ID:          "demo3",
			Name:        "Rolling Papers (King Size)",
			Category:    "Papers",
			Price:       decimal.RequireFromString("2.99"),
			Description: "Slow-burning king size papers.",
			Image:       "",
			Quantity:    120,
		},
	}
}
