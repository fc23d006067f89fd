package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/catalog"
	"github.com/yeremiapane/kitsu-storefront/checkout"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/router"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/storage"
	"github.com/yeremiapane/kitsu-storefront/utils"
	"github.com/yeremiapane/kitsu-storefront/view"
)

const menuJSON = `[
	{"id": 1, "name": "Tonkotsu Ramen", "price": "189.00", "image_url": "https://img/1.jpg"},
	{"id": 2, "name": "Gyoza", "price": "79.50"}
]`

// fakeBackend stands in for the restaurant API.
type fakeBackend struct {
	mu           sync.Mutex
	menuDown     bool
	rejectOrders bool
	orders       []map[string]interface{}
	server       *httptest.Server

	// orderHit and releaseOrder hold an order request open when set.
	orderHit     chan struct{}
	releaseOrder chan struct{}
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/items/", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		down := fb.menuDown
		fb.mu.Unlock()
		if down {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(menuJSON))
	})
	mux.HandleFunc("POST /api/orders/", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		hit, release := fb.orderHit, fb.releaseOrder
		fb.mu.Unlock()
		if hit != nil {
			hit <- struct{}{}
			<-release
		}

		fb.mu.Lock()
		defer fb.mu.Unlock()
		if fb.rejectOrders {
			http.Error(w, `{"detail": "kitchen closed"}`, http.StatusBadRequest)
			return
		}
		var body map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		fb.orders = append(fb.orders, body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order_id": 42, "total_price": "457.50"}`))
	})
	mux.HandleFunc("POST /api/payments/create-intent/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"payment_url": "https://pay.example/42"}`))
	})
	mux.HandleFunc("GET /api/orders/{id}/status/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "42" {
			http.Error(w, `{"detail": "Not found."}`, http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"order_id": 42, "status": "PREPARING", "total_price": "457.50"}`))
	})

	fb.server = httptest.NewServer(mux)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) Orders() []map[string]interface{} {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.orders
}

type testApp struct {
	router  *gin.Engine
	engine  *cart.Engine
	cache   *catalog.Cache
	kv      *storage.MemoryStore
	hub     *view.Hub
	handoff *checkout.Handoff
	backend *fakeBackend
}

func setupApp(t *testing.T, loadMenu bool) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.Silence()

	fb := newFakeBackend(t)
	cache := catalog.NewCache(services.NewMenuService(fb.server.URL, time.Second))
	if loadMenu {
		_, err := cache.Load(context.Background())
		require.NoError(t, err)
	}

	kv := storage.NewMemoryStore()
	hub := view.NewHub()
	engine := cart.NewEngine(cache, storage.NewCartStore(kv, "kitsuCart"), hub)
	handoff := checkout.NewHandoff(
		services.NewOrderService(fb.server.URL, time.Second),
		services.NewPaymentService(fb.server.URL, time.Second),
		engine,
		nil,
	)

	r := router.SetupRouter(router.Dependencies{
		Catalog:        cache,
		Engine:         engine,
		Handoff:        handoff,
		Orders:         services.NewOrderService(fb.server.URL, time.Second),
		Hub:            hub,
		AllowedOrigin:  "http://127.0.0.1:5500",
		RateLimit:      1000,
		BackendTimeout: time.Second,
	})

	return &testApp{router: r, engine: engine, cache: cache, kv: kv, hub: hub, handoff: handoff, backend: fb}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (app *testApp) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decodeCart(t *testing.T, env envelope) view.CartViewModel {
	t.Helper()
	var vm view.CartViewModel
	require.NoError(t, json.Unmarshal(env.Data, &vm))
	return vm
}

func decodeItems(t *testing.T, env envelope) []models.CatalogItem {
	t.Helper()
	var items []models.CatalogItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	return items
}
