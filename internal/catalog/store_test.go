package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	configured bool
	products   []Product
	err        error
}

func (s *stubFetcher) Configured() bool { return s.configured }
func (s *stubFetcher) FetchProducts(ctx context.Context) ([]Product, error) {
	return s.products, s.err
}

func sampleProducts() []Product {
	return []Product{
		{ID: "a", Name: "Grape Vape", Category: "Vapes", Description: "Grape flavor", Price: decimal.RequireFromString("19.99"), Quantity: 5},
		{ID: "b", Name: "Bubbler", Category: "Glass", Description: "Small glass bubbler", Price: decimal.RequireFromString("29.99"), Quantity: 0},
		{ID: "c", Name: "Hemp Wraps", Category: "Papers", Description: "Natural hemp wraps", Price: decimal.RequireFromString("4.99"), Quantity: 40},
		{ID: "d", Name: "Mint Vape", Category: "Vapes", Description: "Cool mint", Price: decimal.RequireFromString("21.99"), Quantity: 12},
	}
}

func TestLoadUnconfiguredFallsBackToDemo(t *testing.T) {
	store := NewStore(&stubFetcher{configured: false}, nil, nil)

	source := store.Load(context.Background())

	assert.Equal(t, SourceDemo, source)
	assert.Equal(t, SourceDemo, store.Source())
	require.Equal(t, 3, store.Len())

	p, ok := store.Get("demo1")
	require.True(t, ok)
	assert.Equal(t, "Blueberry Delta 8 Disposable", p.Name)
	assert.Equal(t, "$24.99", p.PriceLabel())
}

func TestLoadFetchErrorFallsBackToDemo(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, err: errors.New("boom")}, nil, nil)

	source := store.Load(context.Background())

	assert.Equal(t, SourceDemo, source)
	assert.Equal(t, 3, store.Len())
}

func TestLoadBackendSuccess(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)

	source := store.Load(context.Background())

	assert.Equal(t, SourceBackend, source)
	assert.Equal(t, 4, store.Len())
}

func TestLoadNotifiesSubscribers(t *testing.T) {
	store := NewStore(&stubFetcher{configured: false}, nil, nil)

	calls := 0
	store.Subscribe(func() { calls++ })

	store.Load(context.Background())
	store.Load(context.Background())

	assert.Equal(t, 2, calls)
}

func TestCategoriesSortedDistinctNonEmpty(t *testing.T) {
	products := sampleProducts()
	products = append(products, Product{ID: "e", Name: "Mystery", Category: ""})
	store := NewStore(&stubFetcher{configured: true, products: products}, nil, nil)
	store.Load(context.Background())

	assert.Equal(t, []string{"Glass", "Papers", "Vapes"}, store.Categories())
}

func TestFilterByCategory(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)
	store.Load(context.Background())

	got := store.Filter("Vapes", "")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
}

func TestFilterBySearchIsCaseInsensitive(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)
	store.Load(context.Background())

	got := store.Filter("", "  GLASS ")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestFilterSearchCoversNameDescriptionCategory(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)
	store.Load(context.Background())

	assert.Len(t, store.Filter("", "mint"), 1)    // name
	assert.Len(t, store.Filter("", "natural"), 1) // description
	assert.Len(t, store.Filter("", "papers"), 1)  // category
}

func TestFilterComposesWithAnd(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)
	store.Load(context.Background())

	got := store.Filter("Vapes", "mint")
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].ID)

	assert.Empty(t, store.Filter("Glass", "mint"))
}

func TestFilterIsIdempotentAndOrderIndependent(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)
	store.Load(context.Background())

	// Applying both filters at once must match filtering twice in either order.
	both := store.Filter("Vapes", "vape")

	categoryFirst := filterSlice(store.Filter("Vapes", ""), func(p Product) bool {
		return containsFold(p.Name+" "+p.Description+" "+p.Category, "vape")
	})
	searchFirst := filterSlice(store.Filter("", "vape"), func(p Product) bool {
		return p.Category == "Vapes"
	})

	assert.Equal(t, ids(both), ids(categoryFirst))
	assert.Equal(t, ids(both), ids(searchFirst))
	assert.Equal(t, ids(both), ids(store.Filter("Vapes", "vape")))
}

func TestFilterIncludesOutOfStock(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)
	store.Load(context.Background())

	got := store.Filter("Glass", "")
	require.Len(t, got, 1)
	assert.False(t, got[0].InStock())
}

func TestProductsReturnsCopy(t *testing.T) {
	store := NewStore(&stubFetcher{configured: true, products: sampleProducts()}, nil, nil)
	store.Load(context.Background())

	snapshot := store.Products()
	snapshot[0].Name = "mutated"

	p, _ := store.Get("a")
	assert.Equal(t, "Grape Vape", p.Name)
}

func filterSlice(in []Product, keep func(Product) bool) []Product {
	var out []Product
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
