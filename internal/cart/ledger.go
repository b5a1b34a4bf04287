package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
	"github.com/ogdeig/diamond-ave-storefront/pkg/metrics"
)

// Line is one cart entry. Name and Price are snapshots taken when the line
// was created; catalog price changes do not reach items already in the cart.
// MaxQty is the product's stock at creation time and is never refreshed, even
// if the same product is added again after a catalog reload.
type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Qty       int
	MaxQty    int
}

// LineTotal is Price multiplied by Qty.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// ProductGetter resolves a product by id at add time.
type ProductGetter interface {
	Get(id string) (catalog.Product, bool)
}

// Ledger is the session's pickup order: an ordered set of lines, at most one
// per product, every line holding 1 <= Qty <= MaxQty. All mutations notify
// subscribers so dependent views re-render.
type Ledger struct {
	mu    sync.Mutex
	lines []Line
	subs  []func()

	catalog ProductGetter
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

func NewLedger(catalog ProductGetter, logg *logger.Logger, m *metrics.StorefrontMetrics) *Ledger {
	return &Ledger{catalog: catalog, logg: logg, metrics: m}
}

// Subscribe registers fn to run after every mutation.
func (g *Ledger) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, fn)
}

// Add puts qtyRequested units of the product into the cart. Out-of-stock or
// unknown products are a silent no-op. An existing line grows up to its
// stored MaxQty ceiling; a new line starts at min(qtyRequested, stock) with
// MaxQty snapshotted from current stock.
func (g *Ledger) Add(ctx context.Context, productID string, qtyRequested int) {
	if qtyRequested < 1 {
		qtyRequested = 1
	}

	product, ok := g.catalog.Get(productID)
	if !ok {
		if g.logg != nil {
			g.logg.Debug(g.logg.WithProductID(ctx, productID), "cart.add ignored: unknown product")
		}
		return
	}
	if product.Quantity <= 0 {
		if g.logg != nil {
			g.logg.Debug(g.logg.WithProductID(ctx, productID), "cart.add ignored: out of stock")
		}
		return
	}

	g.mu.Lock()
	if idx := g.indexOf(productID); idx >= 0 {
		line := &g.lines[idx]
		newQty := line.Qty + qtyRequested
		if newQty > line.MaxQty {
			newQty = line.MaxQty
		}
		line.Qty = newQty
	} else {
		qty := qtyRequested
		if qty > product.Quantity {
			qty = product.Quantity
		}
		g.lines = append(g.lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Qty:       qty,
			MaxQty:    product.Quantity,
		})
	}
	subs := g.snapshotSubs()
	g.mu.Unlock()

	g.notify(subs)
}

// SetQty sets the line quantity. At or below zero the line is removed. Above
// the stored MaxQty the quantity clamps to the ceiling and clamped reports
// true so callers can surface the stock-limit notice; the operation still
// succeeds at the clamped value. Unknown lines are a no-op.
func (g *Ledger) SetQty(ctx context.Context, productID string, newQty int) (clamped bool) {
	g.mu.Lock()
	idx := g.indexOf(productID)
	if idx < 0 {
		g.mu.Unlock()
		return false
	}

	if newQty <= 0 {
		g.lines = append(g.lines[:idx], g.lines[idx+1:]...)
	} else {
		line := &g.lines[idx]
		if newQty > line.MaxQty {
			newQty = line.MaxQty
			clamped = true
		}
		line.Qty = newQty
	}
	subs := g.snapshotSubs()
	g.mu.Unlock()

	if clamped {
		g.metrics.IncStockClamp()
		if g.logg != nil {
			g.logg.Warn(g.logg.WithProductID(ctx, productID), "cart.set_qty clamped to stock ceiling")
		}
	}

	g.notify(subs)
	return clamped
}

// Increment raises the line quantity by one, clamping at the stock ceiling.
func (g *Ledger) Increment(ctx context.Context, productID string) (clamped bool) {
	if line, ok := g.Find(productID); ok {
		return g.SetQty(ctx, productID, line.Qty+1)
	}
	return false
}

// Decrement lowers the line quantity by one, removing the line at zero.
func (g *Ledger) Decrement(ctx context.Context, productID string) (clamped bool) {
	if line, ok := g.Find(productID); ok {
		return g.SetQty(ctx, productID, line.Qty-1)
	}
	return false
}

// Remove deletes the line unconditionally.
func (g *Ledger) Remove(productID string) {
	g.mu.Lock()
	idx := g.indexOf(productID)
	if idx >= 0 {
		g.lines = append(g.lines[:idx], g.lines[idx+1:]...)
	}
	subs := g.snapshotSubs()
	g.mu.Unlock()

	if idx >= 0 {
		g.notify(subs)
	}
}

// Clear empties the ledger, used after a confirmed order submission.
func (g *Ledger) Clear() {
	g.mu.Lock()
	g.lines = nil
	subs := g.snapshotSubs()
	g.mu.Unlock()

	g.notify(subs)
}

// Lines returns a snapshot copy in insertion order.
func (g *Ledger) Lines() []Line {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}

func (g *Ledger) Find(productID string) (Line, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if idx := g.indexOf(productID); idx >= 0 {
		return g.lines[idx], true
	}
	return Line{}, false
}

func (g *Ledger) Empty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.lines) == 0
}

// Total recomputes the sum of price times quantity on every call.
func (g *Ledger) Total() decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := decimal.Zero
	for _, line := range g.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// TotalString renders the total with two decimal places.
func (g *Ledger) TotalString() string {
	return g.Total().StringFixed(2)
}

func (g *Ledger) indexOf(productID string) int {
	for i, line := range g.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (g *Ledger) snapshotSubs() []func() {
	subs := make([]func(), len(g.subs))
	copy(subs, g.subs)
	return subs
}

func (g *Ledger) notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
