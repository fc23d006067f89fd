package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yeremiapane/kitsu-storefront/models"
)

type OrderService struct {
	client *Client
}

func NewOrderService(baseURL string, timeout time.Duration) *OrderService {
	return &OrderService{client: NewClient(baseURL, timeout)}
}

// CreateOrder posts the order. The request is validated first so an empty
// or anonymous order never reaches the network.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.CreatedOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created models.CreatedOrder
	err := s.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/orders/",
		endpoint: "orders.create",
		body:     req,
	}, &created)
	if err != nil {
		return nil, err
	}
	if created.OrderID == "" {
		return nil, fmt.Errorf("order response has no order_id")
	}
	return &created, nil
}

// GetOrderStatus is the public tracking lookup.
func (s *OrderService) GetOrderStatus(ctx context.Context, id models.Identifier) (*models.OrderTracking, error) {
	if id == "" {
		return nil, fmt.Errorf("order id is required")
	}

	var tracking models.OrderTracking
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/orders/" + url.PathEscape(id.String()) + "/status/",
		endpoint: "orders.status",
	}, &tracking)
	if err != nil {
		return nil, err
	}
	return &tracking, nil
}
