package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ogdeig/diamond-ave-storefront/api/responses"
	"github.com/ogdeig/diamond-ave-storefront/api/validators"
	cartsvc "github.com/ogdeig/diamond-ave-storefront/internal/cart"
	pkgerrors "github.com/ogdeig/diamond-ave-storefront/pkg/errors"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
)

// CartFetch renders the current cart.
func CartFetch(ledger *cartsvc.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newCartView(ledger, false))
	}
}

// CartAdd puts units of a product into the cart, the same entry path the
// product cards use. Out-of-stock adds are a silent no-op, mirroring the
// disabled affordance on the page.
func CartAdd(ledger *cartsvc.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ledger.Add(r.Context(), payload.ProductID, payload.Qty)

		responses.WriteSuccess(w, newCartView(ledger, false))
	}
}

// CartSetQty sets a line's quantity. Zero or less removes the line; above the
// stock ceiling clamps and surfaces the stock-limit warning in the view.
func CartSetQty(ledger *cartsvc.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload setQtyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clamped := ledger.SetQty(r.Context(), productID, payload.Qty)

		responses.WriteSuccess(w, newCartView(ledger, clamped))
	}
}

// CartIncrement raises a line's quantity by one.
func CartIncrement(ledger *cartsvc.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		clamped := ledger.Increment(r.Context(), productID)
		responses.WriteSuccess(w, newCartView(ledger, clamped))
	}
}

// CartDecrement lowers a line's quantity by one, removing it at zero.
func CartDecrement(ledger *cartsvc.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		ledger.Decrement(r.Context(), productID)
		responses.WriteSuccess(w, newCartView(ledger, false))
	}
}

// CartRemove deletes a line unconditionally.
func CartRemove(ledger *cartsvc.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		ledger.Remove(productID)
		responses.WriteSuccess(w, newCartView(ledger, false))
	}
}
