package shopapi

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
)

// ErrOrderRejected marks a well-formed backend reply without a success flag.
var ErrOrderRejected = errors.New("order rejected by shop backend")

// wireProduct tolerates the loose typing of the sheet-backed backend: ids may
// arrive as numbers or strings, quantities as floats.
type wireProduct struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Quantity    float64         `json:"quantity"`
}

func (w wireProduct) toProduct() catalog.Product {
	return catalog.Product{
		ID:          rawToString(w.ID),
		Name:        w.Name,
		Category:    w.Category,
		Description: w.Description,
		Image:       w.Image,
		Price:       w.Price,
		Quantity:    int(w.Quantity),
	}
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

// OrderPayload is the order body posted to the backend. Prices travel as
// plain JSON numbers.
type OrderPayload struct {
	Customer     string      `json:"customer"`
	Phone        string      `json:"phone"`
	PickupWindow string      `json:"pickupWindow"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
}

type OrderItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type orderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// OrderConfirmation carries the backend-assigned order id.
type OrderConfirmation struct {
	OrderID string
}
