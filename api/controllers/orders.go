package controllers

import (
	"net/http"

	"github.com/ogdeig/diamond-ave-storefront/api/responses"
	"github.com/ogdeig/diamond-ave-storefront/api/validators"
	"github.com/ogdeig/diamond-ave-storefront/internal/orders"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
)

type submitOrderRequest struct {
	Customer     string `json:"customer"`
	Phone        string `json:"phone"`
	PickupWindow string `json:"pickupWindow"`
}

type submitOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
	Demo    bool   `json:"demo,omitempty"`
}

// OrderSubmit validates the pickup details and hands the cart to the
// submitter. Field presence is checked by the submitter itself so the exact
// status-line messages reach the page.
func OrderSubmit(submitter *orders.Submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload submitOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := submitter.Submit(r.Context(), orders.PickupDetails{
			Customer:     payload.Customer,
			Phone:        payload.Phone,
			PickupWindow: payload.PickupWindow,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, submitOrderResponse{
			Message: result.Message,
			OrderID: result.OrderID,
			Demo:    result.Demo,
		})
	}
}
