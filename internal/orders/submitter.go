package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ogdeig/diamond-ave-storefront/internal/cart"
	"github.com/ogdeig/diamond-ave-storefront/internal/shopapi"
	pkgerrors "github.com/ogdeig/diamond-ave-storefront/pkg/errors"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
	"github.com/ogdeig/diamond-ave-storefront/pkg/metrics"
)

// User-facing status messages. The exact wording is part of the page
// contract.
const (
	MsgEmptyCart      = "Add at least one item to your pickup order."
	MsgMissingDetails = "Please fill in all pickup details."
	MsgDemoMode       = "Demo mode: calculator and form are working, but order was not sent."
	MsgBackendProblem = "There was a problem placing your order. Please try again."
	MsgNetworkError   = "Network error submitting order. Please try again."
	MsgInFlight       = "An order submission is already in progress."
)

// OrderClient is the slice of the shop client the submitter needs.
type OrderClient interface {
	Configured() bool
	SubmitOrder(ctx context.Context, payload shopapi.OrderPayload) (shopapi.OrderConfirmation, error)
}

// PickupDetails are the customer fields required before submission.
type PickupDetails struct {
	Customer     string
	Phone        string
	PickupWindow string
}

func (d PickupDetails) trimmed() PickupDetails {
	return PickupDetails{
		Customer:     strings.TrimSpace(d.Customer),
		Phone:        strings.TrimSpace(d.Phone),
		PickupWindow: strings.TrimSpace(d.PickupWindow),
	}
}

// Result describes a completed submission.
type Result struct {
	Message string
	OrderID string
	Demo    bool
}

// Submitter validates pickup details, serializes the ledger into an order
// payload and submits it. The cart is cleared only on a confirmed success;
// every failure preserves it so the customer can resubmit.
type Submitter struct {
	client  OrderClient
	ledger  *cart.Ledger
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics

	mu       sync.Mutex
	inFlight bool
}

func NewSubmitter(client OrderClient, ledger *cart.Ledger, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Submitter, error) {
	if client == nil {
		return nil, fmt.Errorf("order client required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("cart ledger required")
	}
	return &Submitter{client: client, ledger: ledger, logg: logg, metrics: m}, nil
}

// Submit runs one submission attempt. A second attempt while one is
// outstanding is rejected rather than raced.
func (s *Submitter) Submit(ctx context.Context, details PickupDetails) (Result, error) {
	if !s.begin() {
		return Result{}, pkgerrors.New(pkgerrors.CodeConflict, MsgInFlight)
	}
	defer s.end()

	if s.ledger.Empty() {
		s.metrics.IncOrderOutcome("invalid")
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, MsgEmptyCart)
	}

	details = details.trimmed()
	if details.Customer == "" || details.Phone == "" || details.PickupWindow == "" {
		s.metrics.IncOrderOutcome("invalid")
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, MsgMissingDetails)
	}

	if !s.client.Configured() {
		s.metrics.IncOrderOutcome("demo")
		if s.logg != nil {
			s.logg.Info(ctx, "demo mode: order validated but not transmitted")
		}
		return Result{Message: MsgDemoMode, Demo: true}, nil
	}

	payload := s.buildPayload(details)

	start := time.Now()
	confirmation, err := s.client.SubmitOrder(ctx, payload)
	if err != nil {
		if errors.Is(err, shopapi.ErrOrderRejected) {
			s.metrics.IncOrderOutcome("rejected")
			s.metrics.ObserveSubmitDuration("rejected", time.Since(start))
			if s.logg != nil {
				s.logg.Warn(ctx, "shop backend rejected order")
			}
			return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, MsgBackendProblem)
		}
		s.metrics.IncOrderOutcome("failed")
		s.metrics.ObserveSubmitDuration("failed", time.Since(start))
		if s.logg != nil {
			s.logg.Error(ctx, "order submission transport error", err)
		}
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, MsgNetworkError)
	}

	s.metrics.IncOrderOutcome("accepted")
	s.metrics.ObserveSubmitDuration("accepted", time.Since(start))

	s.ledger.Clear()

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", confirmation.OrderID), "order placed")
	}

	return Result{
		Message: fmt.Sprintf("Order placed! Your order ID is %s. Please bring valid ID at pickup.", confirmation.OrderID),
		OrderID: confirmation.OrderID,
	}, nil
}

// buildPayload mirrors the current ledger exactly; the total is the ledger's
// own computation, not a re-derivation.
func (s *Submitter) buildPayload(details PickupDetails) shopapi.OrderPayload {
	lines := s.ledger.Lines()
	items := make([]shopapi.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, shopapi.OrderItem{
			ID:    line.ProductID,
			Name:  line.Name,
			Qty:   line.Qty,
			Price: line.Price.InexactFloat64(),
		})
	}
	return shopapi.OrderPayload{
		Customer:     details.Customer,
		Phone:        details.Phone,
		PickupWindow: details.PickupWindow,
		Items:        items,
		Total:        s.ledger.Total().InexactFloat64(),
	}
}

func (s *Submitter) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Submitter) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}
