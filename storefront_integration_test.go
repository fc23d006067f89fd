package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/catalog"
	"github.com/yeremiapane/kitsu-storefront/checkout"
	"github.com/yeremiapane/kitsu-storefront/database"
	"github.com/yeremiapane/kitsu-storefront/router"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/storage"
	"github.com/yeremiapane/kitsu-storefront/utils"
	"github.com/yeremiapane/kitsu-storefront/view"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	utils.InitLogger("error")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow:
// 1. load the menu
// 2. fill the cart through the HTTP API
// 3. a second session edits the same persisted cart and the first one picks it up
// 4. checkout clears the persisted cart
// 5. track the placed order
func TestEndToEndIntegration(t *testing.T) {
	backend := fakeRestaurant(t)
	db := setupTestDB(t)
	kv := storage.NewGormStore(db)

	cache := catalog.NewCache(services.NewMenuService(backend.URL, time.Second))
	_, err := cache.Load(context.Background())
	require.NoError(t, err)

	hub := view.NewHub()
	store := storage.NewCartStore(kv, "kitsuCart")
	engine := cart.NewEngine(cache, store, hub)
	orders := services.NewOrderService(backend.URL, time.Second)
	handoff := checkout.NewHandoff(orders, services.NewPaymentService(backend.URL, time.Second), engine, nil)

	r := router.SetupRouter(router.Dependencies{
		Catalog:        cache,
		Engine:         engine,
		Handoff:        handoff,
		Orders:         orders,
		Hub:            hub,
		AllowedOrigin:  "http://127.0.0.1:5500",
		RateLimit:      1000,
		BackendTimeout: time.Second,
	})

	addToCartTest(t, r, "1", 1)
	addToCartTest(t, r, "1", 2)
	addToCartTest(t, r, "2", 3)

	otherSessionTest(t, kv, cache, store, engine)

	orderID := checkoutTest(t, r, store)

	trackOrderTest(t, r, orderID)
}

func fakeRestaurant(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Tonkotsu Ramen", "price": "189.00"}, {"id": 2, "name": "Gyoza", "price": "79.50"}]`))
	})
	mux.HandleFunc("POST /api/orders/", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(raw), `"items":[`) {
			http.Error(w, "items must be a list", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order_id": 77, "total_price": "458.00"}`))
	})
	mux.HandleFunc("POST /api/payments/create-intent/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"payment_url": "https://pay.example/77"}`))
	})
	mux.HandleFunc("GET /api/orders/{id}/status/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id": ` + r.PathValue("id") + `, "status": "PENDING", "total_price": "458.00"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, r *gin.Engine, method, path string, body io.Reader) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func addToCartTest(t *testing.T, r *gin.Engine, id string, wantCount int) {
	code, env := serve(t, r, http.MethodPost, "/cart/add/"+id, nil)
	require.Equal(t, http.StatusOK, code)

	var vm view.CartViewModel
	require.NoError(t, json.Unmarshal(env.Data, &vm))
	assert.Equal(t, wantCount, vm.BadgeCount)
}

// otherSessionTest edits the cart from a second engine sharing the database,
// then checks that the change monitor brings the first engine up to date.
func otherSessionTest(t *testing.T, kv storage.KeyValueStore, cache *catalog.Cache, store *storage.CartStore, engine *cart.Engine) {
	other := cart.NewEngine(cache, storage.NewCartStore(kv, "kitsuCart"))
	require.NoError(t, other.AddItem("2"))

	monitor := services.NewChangeMonitor(store, engine, time.Hour)
	require.True(t, monitor.CheckChanges())

	snap := engine.Snapshot()
	assert.Equal(t, 4, snap.Count)
	assert.True(t, decimal.RequireFromString("537.00").Equal(snap.Total), "total %s", snap.Total)
}

func checkoutTest(t *testing.T, r *gin.Engine, store *storage.CartStore) string {
	code, env := serve(t, r, http.MethodPost, "/checkout",
		strings.NewReader(`{"name": "Aiko", "phone": "0812345678", "address": "12 Sukhumvit"}`))
	require.Equal(t, http.StatusCreated, code, env.Message)

	var receipt struct {
		OrderID    string `json:"order_id"`
		PaymentURL string `json:"payment_url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.Equal(t, "https://pay.example/77", receipt.PaymentURL)

	assert.True(t, store.Load().IsEmpty(), "persisted cart is empty after checkout")
	return receipt.OrderID
}

func trackOrderTest(t *testing.T, r *gin.Engine, orderID string) {
	code, env := serve(t, r, http.MethodGet, "/orders/"+orderID+"/status", nil)
	require.Equal(t, http.StatusOK, code)

	var tracking struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tracking))
	assert.Equal(t, "PENDING", tracking.Status)
}
