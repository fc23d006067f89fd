package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNoOrderItems    = errors.New("order has no items")
	ErrMissingCustomer = errors.New("customer name and phone are required")
)

// CustomerInfo are the contact fields collected by the checkout form.
type CustomerInfo struct {
	Name    string `json:"customer_name"`
	Phone   string `json:"customer_phone"`
	Address string `json:"customer_address,omitempty"`
	Email   string `json:"customer_email,omitempty"`
}

func (c CustomerInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" {
		return ErrMissingCustomer
	}
	return nil
}

// OrderItem is the wire shape of one cart line. Prices are never sent; the
// backend prices the order itself.
type OrderItem struct {
	ID       Identifier `json:"id"`
	Quantity int        `json:"quantity"`
}

// OrderRequest is the body posted to the order-creation endpoint. Items are
// always a native JSON array.
type OrderRequest struct {
	CustomerInfo
	Items []OrderItem `json:"items"`
}

// NewOrderRequest builds the payload from a cart snapshot.
func NewOrderRequest(customer CustomerInfo, snapshot Snapshot) OrderRequest {
	items := make([]OrderItem, 0, len(snapshot.Lines))
	for _, l := range snapshot.Lines {
		items = append(items, OrderItem{ID: l.ID, Quantity: l.Quantity})
	}
	return OrderRequest{CustomerInfo: customer, Items: items}
}

func (r OrderRequest) Validate() error {
	if err := r.CustomerInfo.Validate(); err != nil {
		return err
	}
	if len(r.Items) == 0 {
		return ErrNoOrderItems
	}
	for _, it := range r.Items {
		if it.ID == "" || it.Quantity < 1 {
			return fmt.Errorf("invalid order item %q x%d", it.ID, it.Quantity)
		}
	}
	return nil
}

// CreatedOrder is the order-creation response.
type CreatedOrder struct {
	OrderID    Identifier      `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderReceipt is what a successful checkout hands back to the caller.
type OrderReceipt struct {
	OrderID    Identifier      `json:"order_id"`
	Total      decimal.Decimal `json:"total"`
	PaymentURL string          `json:"payment_url"`
}

// OrderTracking is the order status endpoint response.
type OrderTracking struct {
	OrderID    Identifier      `json:"order_id"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
