package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
	"github.com/ogdeig/diamond-ave-storefront/pkg/metrics"
)

// Source identifies where the current catalog came from.
const (
	SourceBackend = "backend"
	SourceDemo    = "demo"
)

// Fetcher loads the product collection from the shop backend.
type Fetcher interface {
	Configured() bool
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Store holds the session's product catalog. It is populated once per
// session from the backend, or from the static demo set when the backend is
// unreachable or not configured.
type Store struct {
	mu       sync.RWMutex
	products []Product
	source   string
	subs     []func()

	fetcher Fetcher
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

func NewStore(fetcher Fetcher, logg *logger.Logger, m *metrics.StorefrontMetrics) *Store {
	return &Store{fetcher: fetcher, logg: logg, metrics: m}
}

// Load populates the store. Any failure fetching from the backend falls back
// to the demo set rather than leaving the catalog empty; the degraded mode is
// logged and counted, never silent.
func (s *Store) Load(ctx context.Context) string {
	if s.fetcher == nil || !s.fetcher.Configured() {
		if s.logg != nil {
			s.logg.Warn(ctx, "no shop backend configured, loading demo products")
		}
		s.populate(DemoProducts(), SourceDemo)
		return SourceDemo
	}

	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "error fetching products, falling back to demo", err)
		}
		s.populate(DemoProducts(), SourceDemo)
		return SourceDemo
	}

	s.populate(products, SourceBackend)
	return SourceBackend
}

func (s *Store) populate(products []Product, source string) {
	s.mu.Lock()
	s.products = products
	s.source = source
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.metrics.IncCatalogLoad(source)

	for _, fn := range subs {
		fn()
	}
}

// Subscribe registers fn to run after every (re)population.
func (s *Store) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Products returns a snapshot copy of the catalog.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Source reports where the current catalog came from, empty before Load.
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Categories returns the distinct non-empty category values in alphabetical
// order. The "All" wildcard is the caller's concern.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	var categories []string
	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}

// Filter returns the products passing both the exact category match and the
// case-insensitive search over name, description and category. Empty filters
// pass everything; out-of-stock products are included and left for the caller
// to mark unavailable.
func (s *Store) Filter(category, search string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(search))

	var out []Product
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if term != "" {
			haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
			if !strings.Contains(haystack, term) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
