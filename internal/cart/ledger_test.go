package cart

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
)

type stubCatalog map[string]catalog.Product

func (s stubCatalog) Get(id string) (catalog.Product, bool) {
	p, ok := s[id]
	return p, ok
}

func testCatalog() stubCatalog {
	return stubCatalog{
		"a": {ID: "a", Name: "Vape Pen", Price: decimal.RequireFromString("10.00"), Quantity: 5},
		"b": {ID: "b", Name: "Grinder", Price: decimal.RequireFromString("12.50"), Quantity: 3},
		"z": {ID: "z", Name: "Sold Out Torch", Price: decimal.RequireFromString("49.99"), Quantity: 0},
	}
}

func newTestLedger() *Ledger {
	return NewLedger(testCatalog(), nil, nil)
}

func TestAddCreatesSnapshotLine(t *testing.T) {
	ledger := newTestLedger()

	ledger.Add(context.Background(), "a", 3)

	line, ok := ledger.Find("a")
	require.True(t, ok)
	assert.Equal(t, 3, line.Qty)
	assert.Equal(t, 5, line.MaxQty)
	assert.Equal(t, "Vape Pen", line.Name)
	assert.Equal(t, "30.00", ledger.TotalString())
}

func TestAddClampsToStockOnCreation(t *testing.T) {
	ledger := newTestLedger()

	ledger.Add(context.Background(), "b", 99)

	line, ok := ledger.Find("b")
	require.True(t, ok)
	assert.Equal(t, 3, line.Qty)
}

func TestAddExistingLineClampsAtStoredCeiling(t *testing.T) {
	ledger := newTestLedger()

	// Spec scenario: stock 5, add 3 then 3 again clamps at 5, not 6.
	ledger.Add(context.Background(), "a", 3)
	ledger.Add(context.Background(), "a", 3)

	line, ok := ledger.Find("a")
	require.True(t, ok)
	assert.Equal(t, 5, line.Qty)

	clamped := ledger.SetQty(context.Background(), "a", 0)
	assert.False(t, clamped)
	assert.True(t, ledger.Empty())
	assert.True(t, ledger.Total().IsZero())
}

func TestAddOutOfStockIsNoOp(t *testing.T) {
	ledger := newTestLedger()

	ledger.Add(context.Background(), "z", 1)

	assert.True(t, ledger.Empty())
}

func TestAddUnknownProductIsNoOp(t *testing.T) {
	ledger := newTestLedger()

	ledger.Add(context.Background(), "nope", 1)

	assert.True(t, ledger.Empty())
}

func TestAtMostOneLinePerProduct(t *testing.T) {
	ledger := newTestLedger()

	ledger.Add(context.Background(), "a", 1)
	ledger.Add(context.Background(), "a", 1)
	ledger.Add(context.Background(), "b", 1)

	assert.Len(t, ledger.Lines(), 2)
}

func TestSetQtyClampSurfacesWarning(t *testing.T) {
	ledger := newTestLedger()
	ledger.Add(context.Background(), "b", 1)

	clamped := ledger.SetQty(context.Background(), "b", 10)

	assert.True(t, clamped)
	line, _ := ledger.Find("b")
	assert.Equal(t, 3, line.Qty)
}

func TestSetQtyZeroRemovesLine(t *testing.T) {
	ledger := newTestLedger()
	ledger.Add(context.Background(), "a", 2)

	ledger.SetQty(context.Background(), "a", 0)

	_, ok := ledger.Find("a")
	assert.False(t, ok)
}

func TestSetQtyUnknownLineIsNoOp(t *testing.T) {
	ledger := newTestLedger()

	assert.False(t, ledger.SetQty(context.Background(), "ghost", 4))
}

func TestIncrementDecrement(t *testing.T) {
	ledger := newTestLedger()
	ledger.Add(context.Background(), "a", 1)

	ledger.Increment(context.Background(), "a")
	line, _ := ledger.Find("a")
	assert.Equal(t, 2, line.Qty)

	ledger.Decrement(context.Background(), "a")
	line, _ = ledger.Find("a")
	assert.Equal(t, 1, line.Qty)

	// Decrementing from one removes the line rather than keeping qty 0.
	ledger.Decrement(context.Background(), "a")
	_, ok := ledger.Find("a")
	assert.False(t, ok)
}

func TestIncrementAtCeilingClamps(t *testing.T) {
	ledger := newTestLedger()
	ledger.Add(context.Background(), "b", 3)

	clamped := ledger.Increment(context.Background(), "b")

	assert.True(t, clamped)
	line, _ := ledger.Find("b")
	assert.Equal(t, 3, line.Qty)
}

func TestRemoveAndClear(t *testing.T) {
	ledger := newTestLedger()
	ledger.Add(context.Background(), "a", 1)
	ledger.Add(context.Background(), "b", 1)

	ledger.Remove("a")
	assert.Len(t, ledger.Lines(), 1)

	ledger.Clear()
	assert.True(t, ledger.Empty())
}

func TestMaxQtyNeverRefreshes(t *testing.T) {
	cat := testCatalog()
	ledger := NewLedger(cat, nil, nil)

	ledger.Add(context.Background(), "a", 2)

	// Stock rises after the line was created; the stored ceiling must not.
	p := cat["a"]
	p.Quantity = 50
	cat["a"] = p

	ledger.Add(context.Background(), "a", 10)

	line, _ := ledger.Find("a")
	assert.Equal(t, 5, line.Qty)
	assert.Equal(t, 5, line.MaxQty)
}

func TestMutationsNotifySubscribers(t *testing.T) {
	ledger := newTestLedger()

	calls := 0
	ledger.Subscribe(func() { calls++ })

	ledger.Add(context.Background(), "a", 1)    // 1
	ledger.SetQty(context.Background(), "a", 2) // 2
	ledger.Increment(context.Background(), "a") // 3
	ledger.Remove("a")                          // 4
	ledger.Clear()                              // 5

	assert.Equal(t, 5, calls)
}

func TestTotalMatchesSumOfLines(t *testing.T) {
	ledger := newTestLedger()
	ledger.Add(context.Background(), "a", 2) // 20.00
	ledger.Add(context.Background(), "b", 3) // 37.50

	assert.Equal(t, "57.50", ledger.TotalString())
}

// Invariants hold after every step of arbitrary operation sequences: at most
// one line per product, 1 <= qty <= maxQty on every surviving line, and the
// total always equals the exact sum over current lines.
func TestInvariantsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ids := []string{"a", "b", "z", "ghost"}

	ledger := newTestLedger()

	for i := 0; i < 2000; i++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(5) {
		case 0:
			ledger.Add(context.Background(), id, rng.Intn(10)+1)
		case 1:
			ledger.SetQty(context.Background(), id, rng.Intn(12)-2)
		case 2:
			ledger.Increment(context.Background(), id)
		case 3:
			ledger.Decrement(context.Background(), id)
		case 4:
			if rng.Intn(10) == 0 {
				ledger.Remove(id)
			}
		}

		seen := map[string]bool{}
		expected := decimal.Zero
		for _, line := range ledger.Lines() {
			if seen[line.ProductID] {
				t.Fatalf("step %d: duplicate line for product %s", i, line.ProductID)
			}
			seen[line.ProductID] = true
			if line.Qty < 1 || line.Qty > line.MaxQty {
				t.Fatalf("step %d: line %s qty %d outside [1,%d]", i, line.ProductID, line.Qty, line.MaxQty)
			}
			expected = expected.Add(line.LineTotal())
		}
		if !ledger.Total().Equal(expected) {
			t.Fatalf("step %d: total %s != expected %s", i, ledger.Total(), expected)
		}
	}
}
