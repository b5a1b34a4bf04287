package cart

import (
	cartsvc "github.com/ogdeig/diamond-ave-storefront/internal/cart"
)

const (
	emptyCartNote     = "Your pickup order is empty. Use Quick Order or the menu to add items."
	stockLimitWarning = "You have reached the available stock for this item."
)

type lineView struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	MaxQty    int    `json:"maxQty"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type cartView struct {
	Items   []lineView `json:"items"`
	Total   string     `json:"total"`
	Empty   bool       `json:"empty"`
	Note    string     `json:"note,omitempty"`
	Warning string     `json:"warning,omitempty"`
}

func newCartView(ledger *cartsvc.Ledger, clamped bool) cartView {
	lines := ledger.Lines()

	items := make([]lineView, 0, len(lines))
	for _, line := range lines {
		items = append(items, lineView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Qty:       line.Qty,
			MaxQty:    line.MaxQty,
			UnitPrice: line.Price.StringFixed(2),
			LineTotal: line.LineTotal().StringFixed(2),
		})
	}

	view := cartView{
		Items: items,
		Total: ledger.TotalString(),
		Empty: len(items) == 0,
	}
	if view.Empty {
		view.Note = emptyCartNote
	}
	if clamped {
		view.Warning = stockLimitWarning
	}
	return view
}
