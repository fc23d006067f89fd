package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yeremiapane/kitsu-storefront/models"
)

type PaymentService struct {
	client *Client
}

func NewPaymentService(baseURL string, timeout time.Duration) *PaymentService {
	return &PaymentService{client: NewClient(baseURL, timeout)}
}

// CreateIntent asks for the URL where the customer pays for the order.
func (s *PaymentService) CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	if req.OrderID == "" {
		return nil, fmt.Errorf("payment intent needs an order id")
	}

	var intent models.PaymentIntent
	err := s.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/payments/create-intent/",
		endpoint: "payments.create_intent",
		body:     req,
	}, &intent)
	if err != nil {
		return nil, err
	}
	if intent.PaymentURL == "" {
		return nil, fmt.Errorf("payment intent response has no payment_url")
	}
	return &intent, nil
}
