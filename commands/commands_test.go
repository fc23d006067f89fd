package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

type backend struct {
	mu      sync.Mutex
	orders  []map[string]interface{}
	updates []string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Tonkotsu Ramen", "price": "189.00"}, {"id": 2, "name": "Gyoza", "price": "79.50"}]`))
	})
	mux.HandleFunc("POST /api/orders/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		b.mu.Lock()
		b.orders = append(b.orders, body)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order_id": 42, "total_price": "378.00"}`))
	})
	mux.HandleFunc("POST /api/payments/create-intent/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"payment_url": "https://pay.example/42"}`))
	})
	mux.HandleFunc("GET /api/orders/{id}/status/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id": 42, "status": "DELIVERING", "total_price": "378.00"}`))
	})
	mux.HandleFunc("POST /api/token-auth/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "abc123"}`))
	})
	mux.HandleFunc("GET /api/admin/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[{"id": 42, "customer_name": "Aiko", "customer_phone": "0812", "total_price": "378.00", "status": "PENDING", "created_at": "2024-05-01T12:00:00Z"}]`))
	})
	mux.HandleFunc("PATCH /api/admin/orders/{id}/update-status/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		b.mu.Lock()
		b.updates = append(b.updates, r.PathValue("id")+"="+body["status"])
		b.mu.Unlock()
		w.Write([]byte(`{}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv("STOREFRONT_MENU_URL", server.URL)
	t.Setenv("STOREFRONT_API_URL", server.URL)
	t.Setenv("STOREFRONT_ADMIN_URL", server.URL)
	t.Setenv("STOREFRONT_STORE_DRIVER", "sqlite")
	t.Setenv("STOREFRONT_STORE_DSN", filepath.Join(t.TempDir(), "storefront.db"))
	t.Setenv("STOREFRONT_LOG_LEVEL", "error")
	return b
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	utils.Silence()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "storefront version")
}

func TestMenuCommand(t *testing.T) {
	newBackend(t)

	out, err := run(t, "menu")

	require.NoError(t, err)
	assert.Contains(t, out, "Tonkotsu Ramen")
	assert.Contains(t, out, "฿79.50")
}

func TestCartPersistsAcrossInvocations(t *testing.T) {
	newBackend(t)

	_, err := run(t, "cart", "add", "1")
	require.NoError(t, err)
	_, err = run(t, "cart", "increase", "1")
	require.NoError(t, err)

	out, err := run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Tonkotsu Ramen")
	assert.Contains(t, out, "x2")
	assert.Contains(t, out, "Total: ฿378.00")
	assert.Contains(t, out, "Items in cart (2)")

	out, err = run(t, "cart", "add", "99")
	assert.Error(t, err)
	assert.Contains(t, out, "No product with id 99")

	_, err = run(t, "cart", "remove", "1")
	require.NoError(t, err)
	out, err = run(t, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")
	assert.NotContains(t, out, "Items in cart")
}

func TestCheckoutCommand(t *testing.T) {
	b := newBackend(t)
	_, err := run(t, "cart", "add", "1")
	require.NoError(t, err)
	_, err = run(t, "cart", "add", "1")
	require.NoError(t, err)

	out, err := run(t, "checkout", "--name", "Aiko", "--phone", "0812345678")
	require.NoError(t, err)
	assert.Contains(t, out, "Continue to payment: https://pay.example/42")
	assert.Contains(t, out, "฿378.00")

	require.Len(t, b.orders, 1)
	items := b.orders[0]["items"].([]interface{})
	assert.Equal(t, map[string]interface{}{"id": "1", "quantity": float64(2)}, items[0])

	out, err = run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")

	_, err = run(t, "checkout", "--name", "Aiko", "--phone", "0812345678")
	assert.Error(t, err, "empty cart")
}

func TestTrackCommand(t *testing.T) {
	newBackend(t)

	out, err := run(t, "track", "42")

	require.NoError(t, err)
	assert.Contains(t, out, "Order #42: DELIVERING")
}

func TestAdminCommands(t *testing.T) {
	b := newBackend(t)

	_, err := run(t, "admin", "orders")
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)

	out, err := run(t, "admin", "login", "-u", "chef", "-p", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in.")

	out, err = run(t, "admin", "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "#42")
	assert.Contains(t, out, "PENDING")

	_, err = run(t, "admin", "set-status", "42", "preparing")
	require.NoError(t, err)
	assert.Equal(t, []string{"42=PREPARING"}, b.updates)

	_, err = run(t, "admin", "set-status", "42", "LOST")
	assert.Error(t, err)

	_, err = run(t, "admin", "logout")
	require.NoError(t, err)
	_, err = run(t, "admin", "orders")
	assert.True(t, strings.Contains(err.Error(), "admin login"))
}
