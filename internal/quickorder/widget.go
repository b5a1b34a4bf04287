package quickorder

import (
	"context"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ogdeig/diamond-ave-storefront/internal/cart"
	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
)

// State is the widget's selection state.
type State string

const (
	// NoSelection: no product chosen, quantity and add controls disabled.
	NoSelection State = "no_selection"
	// SelectedInStock: a product with stock chosen, quantity bounded to
	// [1, stock].
	SelectedInStock State = "selected_in_stock"
	// SelectedOutOfStock: the chosen product has no stock, quantity forced
	// to zero and controls disabled.
	SelectedOutOfStock State = "selected_out_of_stock"
)

// Widget is the single-product quick order control: a selector, a bounded
// quantity stepper and a live subtotal, feeding the same cart add path the
// product browser uses.
type Widget struct {
	mu        sync.Mutex
	state     State
	productID string
	qty       int

	catalog *catalog.Store
	ledger  *cart.Ledger
}

func NewWidget(store *catalog.Store, ledger *cart.Ledger) *Widget {
	w := &Widget{state: NoSelection, qty: 1, catalog: store, ledger: ledger}
	// A catalog (re)population rebuilds the product options, which drops any
	// current selection, matching the page behavior.
	store.Subscribe(w.Reset)
	return w
}

// Reset returns the widget to NoSelection.
func (w *Widget) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = NoSelection
	w.productID = ""
	w.qty = 1
}

// Select chooses a product by id. An empty or unknown id returns to
// NoSelection; otherwise the state follows the product's current stock.
func (w *Widget) Select(productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	product, ok := w.catalog.Get(productID)
	if productID == "" || !ok {
		w.state = NoSelection
		w.productID = ""
		w.qty = 1
		return
	}

	w.productID = product.ID
	if !product.InStock() {
		w.state = SelectedOutOfStock
		w.qty = 0
		return
	}

	w.state = SelectedInStock
	if w.qty < 1 {
		w.qty = 1
	}
	if w.qty > product.Quantity {
		w.qty = product.Quantity
	}
}

// SetQty re-clamps the requested quantity into [1, stock]. Outside
// SelectedInStock the edit is ignored.
func (w *Widget) SetQty(qty int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != SelectedInStock {
		return
	}
	product, ok := w.catalog.Get(w.productID)
	if !ok {
		return
	}
	if qty < 1 {
		qty = 1
	}
	if qty > product.Quantity {
		qty = product.Quantity
	}
	w.qty = qty
}

// Add commits min(qty, stock) units to the cart. The selection and state are
// deliberately untouched so repeated adds stay one click away.
func (w *Widget) Add(ctx context.Context) {
	w.mu.Lock()
	if w.state != SelectedInStock {
		w.mu.Unlock()
		return
	}
	productID := w.productID
	qty := w.qty
	product, ok := w.catalog.Get(productID)
	w.mu.Unlock()

	if !ok {
		return
	}
	if qty < 1 {
		qty = 1
	}
	if qty > product.Quantity {
		qty = product.Quantity
	}

	w.ledger.Add(ctx, productID, qty)
}

// View is the rendered widget state.
type View struct {
	State      State  `json:"state"`
	ProductID  string `json:"productId,omitempty"`
	Price      string `json:"price"`
	StockLabel string `json:"stockLabel"`
	Qty        int    `json:"qty"`
	Subtotal   string `json:"subtotal"`
	QtyEnabled bool   `json:"qtyEnabled"`
	AddEnabled bool   `json:"addEnabled"`
}

func (w *Widget) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.catalog.Len() == 0 {
		return View{
			State:      NoSelection,
			Price:      "$0.00",
			StockLabel: "No products",
			Qty:        w.qty,
			Subtotal:   "$0.00",
		}
	}

	product, ok := w.catalog.Get(w.productID)
	if w.state == NoSelection || !ok {
		return View{
			State:      NoSelection,
			Price:      "$0.00",
			StockLabel: "Select a product",
			Qty:        w.qty,
			Subtotal:   "$0.00",
		}
	}

	if w.state == SelectedOutOfStock {
		return View{
			State:      SelectedOutOfStock,
			ProductID:  product.ID,
			Price:      product.PriceLabel(),
			StockLabel: "Out of stock",
			Qty:        0,
			Subtotal:   "$0.00",
		}
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(int64(w.qty)))
	return View{
		State:      SelectedInStock,
		ProductID:  product.ID,
		Price:      product.PriceLabel(),
		StockLabel: "In stock: " + strconv.Itoa(product.Quantity),
		Qty:        w.qty,
		Subtotal:   "$" + subtotal.StringFixed(2),
		QtyEnabled: true,
		AddEnabled: true,
	}
}
