// Package checkout turns a cart snapshot into a backend order and hands the
// customer on to payment.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/kitsu-storefront/metrics"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidCustomer  = models.ErrMissingCustomer
	ErrSubmitInProgress = errors.New("an order is already being submitted")
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateCleared    State = "cleared"
)

// OrderCreator is satisfied by services.OrderService.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.CreatedOrder, error)
}

// PaymentIntentCreator is satisfied by services.PaymentService.
type PaymentIntentCreator interface {
	CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error)
}

// CartClearer is satisfied by cart.Engine.
type CartClearer interface {
	Clear() error
}

// Continuation receives the receipt once the order is placed, typically to
// open the payment URL.
type Continuation func(receipt models.OrderReceipt)

// Handoff runs one checkout at a time. The cart is cleared only after both
// the order and the payment intent were created.
type Handoff struct {
	orders       OrderCreator
	payments     PaymentIntentCreator
	cart         CartClearer
	continuation Continuation

	mu        sync.Mutex
	state     State
	dismissed bool
}

func NewHandoff(orders OrderCreator, payments PaymentIntentCreator, cart CartClearer, continuation Continuation) *Handoff {
	return &Handoff{
		orders:       orders,
		payments:     payments,
		cart:         cart,
		continuation: continuation,
		state:        StateIdle,
	}
}

func (h *Handoff) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Dismiss marks the checkout view as closed. A submission already in flight
// still completes and clears the cart, but its continuation is skipped. Each
// new Submit starts with the view open.
func (h *Handoff) Dismiss() {
	h.mu.Lock()
	h.dismissed = true
	h.mu.Unlock()
}

// Reopen marks the checkout view as shown again.
func (h *Handoff) Reopen() {
	h.mu.Lock()
	h.dismissed = false
	h.mu.Unlock()
}

// Submit places the order for snapshot. On any failure the cart is left as it
// was and the state returns to idle so the user can resubmit.
func (h *Handoff) Submit(ctx context.Context, customer models.CustomerInfo, snapshot models.Snapshot) (*models.OrderReceipt, error) {
	if len(snapshot.Lines) == 0 {
		metrics.CheckoutSubmissions.WithLabelValues("invalid").Inc()
		return nil, ErrEmptyCart
	}
	if err := customer.Validate(); err != nil {
		metrics.CheckoutSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if !h.begin() {
		metrics.CheckoutSubmissions.WithLabelValues("busy").Inc()
		return nil, ErrSubmitInProgress
	}

	receipt, err := h.place(ctx, customer, snapshot)
	if err != nil {
		h.finish(StateIdle)
		metrics.CheckoutSubmissions.WithLabelValues("rejected").Inc()
		utils.ErrorLogger.WithError(err).Warn("Checkout failed, cart kept")
		return nil, err
	}

	if clearErr := h.cart.Clear(); clearErr != nil {
		utils.ErrorLogger.WithError(clearErr).WithField("order_id", receipt.OrderID).
			Error("Order placed but the cart could not be cleared")
	}
	metrics.CheckoutSubmissions.WithLabelValues("success").Inc()

	dismissed := h.finish(StateCleared)
	log := utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": receipt.OrderID,
		"total":    receipt.Total.StringFixed(2),
	})
	if dismissed {
		log.Info("Order placed after checkout was dismissed, skipping payment handoff")
	} else {
		log.Info("Order placed, handing off to payment")
		if h.continuation != nil {
			h.continuation(*receipt)
		}
	}
	return receipt, nil
}

func (h *Handoff) place(ctx context.Context, customer models.CustomerInfo, snapshot models.Snapshot) (*models.OrderReceipt, error) {
	created, err := h.orders.CreateOrder(ctx, models.NewOrderRequest(customer, snapshot))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	intent, err := h.payments.CreateIntent(ctx, models.PaymentIntentRequest{
		OrderID: created.OrderID,
		Amount:  created.TotalPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent for order %s: %w", created.OrderID, err)
	}

	return &models.OrderReceipt{
		OrderID:    created.OrderID,
		Total:      created.TotalPrice,
		PaymentURL: intent.PaymentURL,
	}, nil
}

// begin is the re-entrancy guard.
func (h *Handoff) begin() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateSubmitting {
		return false
	}
	h.state = StateSubmitting
	h.dismissed = false
	return true
}

// finish sets the final state and reports whether the view was dismissed.
func (h *Handoff) finish(s State) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = s
	return h.dismissed
}
