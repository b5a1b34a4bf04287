package controllers

import (
	"net/http"
	"strconv"

	"github.com/ogdeig/diamond-ave-storefront/api/responses"
	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
)

type productView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	PriceLabel  string `json:"priceLabel"`
	Quantity    int    `json:"quantity"`
	Available   bool   `json:"available"`
	StockLabel  string `json:"stockLabel"`
}

type productListView struct {
	Products []productView `json:"products"`
	Empty    bool          `json:"empty"`
	Source   string        `json:"source"`
	Status   string        `json:"status,omitempty"`
}

type categoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func newProductView(p catalog.Product) productView {
	view := productView{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price.StringFixed(2),
		PriceLabel:  p.PriceLabel(),
		Quantity:    p.Quantity,
		Available:   p.InStock(),
	}
	if view.Available {
		view.StockLabel = "In stock: " + strconv.Itoa(p.Quantity)
	} else {
		view.StockLabel = "Out of stock"
	}
	return view
}

// CatalogProducts lists products passing the category and search filters.
// Re-running with the same filters fully replaces prior output on the page,
// so the response always carries the complete filtered set.
func CatalogProducts(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		search := r.URL.Query().Get("search")

		matched := store.Filter(category, search)

		views := make([]productView, 0, len(matched))
		for _, p := range matched {
			views = append(views, newProductView(p))
		}

		list := productListView{
			Products: views,
			Empty:    len(views) == 0,
			Source:   store.Source(),
		}
		if list.Empty {
			list.Status = "No products found."
		}
		if list.Source == catalog.SourceDemo {
			list.Status = "Showing demo products; live catalog unavailable."
		}

		responses.WriteSuccess(w, list)
	}
}

// CatalogCategories offers the filter options: the wildcard plus the
// distinct, sorted category values present in the catalog.
func CatalogCategories(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options := []categoryOption{{Value: "", Label: "All"}}
		for _, c := range store.Categories() {
			options = append(options, categoryOption{Value: c, Label: c})
		}
		responses.WriteSuccess(w, map[string]any{"options": options})
	}
}

// CatalogReload re-runs the catalog load, the page-refresh analogue.
func CatalogReload(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := store.Load(r.Context())
		if logg != nil {
			ctx := logg.WithField(r.Context(), "source", source)
			logg.Info(ctx, "catalog reloaded")
		}
		responses.WriteSuccess(w, map[string]any{
			"source": source,
			"count":  store.Len(),
		})
	}
}
