package models

import "github.com/shopspring/decimal"

// PaymentIntentRequest asks the backend for a payment continuation URL.
type PaymentIntentRequest struct {
	OrderID Identifier      `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// PaymentIntent is the backend's answer; PaymentURL is where the customer
// completes payment.
type PaymentIntent struct {
	PaymentURL string `json:"payment_url"`
}
