package controllers

import (
	"net/http"

	"github.com/ogdeig/diamond-ave-storefront/api/responses"
	"github.com/ogdeig/diamond-ave-storefront/api/validators"
	"github.com/ogdeig/diamond-ave-storefront/internal/quickorder"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
)

type quickSelectRequest struct {
	ProductID string `json:"productId"`
}

type quickQtyRequest struct {
	Qty int `json:"qty"`
}

// QuickOrderFetch renders the widget.
func QuickOrderFetch(widget *quickorder.Widget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, widget.View())
	}
}

// QuickOrderSelect chooses a product; an empty id returns to the placeholder.
func QuickOrderSelect(widget *quickorder.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quickSelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		widget.Select(payload.ProductID)
		responses.WriteSuccess(w, widget.View())
	}
}

// QuickOrderQuantity re-clamps the stepper value within the stock bound.
func QuickOrderQuantity(widget *quickorder.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quickQtyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		widget.SetQty(payload.Qty)
		responses.WriteSuccess(w, widget.View())
	}
}

// QuickOrderAdd commits the current selection to the cart and leaves the
// selection in place for repeat adds.
func QuickOrderAdd(widget *quickorder.Widget, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		widget.Add(r.Context())
		responses.WriteSuccess(w, widget.View())
	}
}
