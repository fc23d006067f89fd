package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

var ErrNotLoggedIn = errors.New("not logged in")

// TokenStorage is the persisted admin token. storage.TokenStore implements it.
type TokenStorage interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// AdminService is the order dashboard client. Every call after Login sends
// "Authorization: Token <value>"; a 401 or 403 ends the session.
type AdminService struct {
	client *Client
	tokens TokenStorage
	now    func() time.Time
}

func NewAdminService(baseURL string, timeout time.Duration, tokens TokenStorage) *AdminService {
	return &AdminService{
		client: NewClient(baseURL, timeout),
		tokens: tokens,
		now:    time.Now,
	}
}

// Login exchanges credentials for a token and stores it.
func (s *AdminService) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	var tok models.AdminToken
	err := s.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/token-auth/",
		endpoint: "admin.login",
		body:     models.AdminCredentials{Username: username, Password: password},
	}, &tok)
	if err != nil {
		return err
	}
	if tok.Token == "" {
		return fmt.Errorf("token-auth response has no token")
	}

	if err := s.tokens.Set(tok.Token); err != nil {
		return fmt.Errorf("store admin token: %w", err)
	}
	utils.InfoLogger.WithField("username", username).Info("Admin logged in")
	return nil
}

func (s *AdminService) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("clear admin token: %w", err)
	}
	utils.InfoLogger.Info("Admin logged out")
	return nil
}

// LoggedIn reports whether a usable token is stored.
func (s *AdminService) LoggedIn() bool {
	_, err := s.token()
	return err == nil
}

func (s *AdminService) ListOrders(ctx context.Context) ([]models.AdminOrder, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}

	var orders []models.AdminOrder
	err = s.client.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/admin/orders/",
		endpoint: "admin.orders",
		token:    token,
	}, &orders)
	if err != nil {
		return nil, s.checkSession(err)
	}
	return orders, nil
}

// UpdateStatus rejects unknown statuses before making any request and sends
// the canonical upper-case form.
func (s *AdminService) UpdateStatus(ctx context.Context, id models.Identifier, status models.AdminOrderStatus) error {
	status, err := models.ParseAdminOrderStatus(string(status))
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("order id is required")
	}

	token, err := s.token()
	if err != nil {
		return err
	}

	err = s.client.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/api/admin/orders/" + url.PathEscape(id.String()) + "/update-status/",
		endpoint: "admin.update_status",
		body:     map[string]models.AdminOrderStatus{"status": status},
		token:    token,
	}, nil)
	if err != nil {
		return s.checkSession(err)
	}

	utils.InfoLogger.WithField("order_id", id).Infof("Order status updated to %s", status)
	return nil
}

// token returns the stored token, clearing it first if it is a JWT past its
// exp claim.
func (s *AdminService) token() (string, error) {
	token, err := s.tokens.Get()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotLoggedIn, err)
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}
	if utils.TokenExpired(token, s.now()) {
		utils.InfoLogger.Info("Admin token expired, clearing")
		s.clearQuietly()
		return "", ErrNotLoggedIn
	}
	return token, nil
}

func (s *AdminService) checkSession(err error) error {
	if errors.Is(err, ErrUnauthorized) {
		utils.ErrorLogger.Warn("Admin session rejected by backend, clearing token")
		s.clearQuietly()
	}
	return err
}

func (s *AdminService) clearQuietly() {
	if err := s.tokens.Clear(); err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to clear admin token")
	}
}
