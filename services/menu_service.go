package services

import (
	"context"
	"net/http"
	"time"

	"github.com/yeremiapane/kitsu-storefront/models"
)

type MenuService struct {
	client *Client
}

func NewMenuService(baseURL string, timeout time.Duration) *MenuService {
	return &MenuService{client: NewClient(baseURL, timeout)}
}

// FetchMenu returns the full menu in the backend's order.
func (s *MenuService) FetchMenu(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/items/",
		endpoint: "menu",
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}
