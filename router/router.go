package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/catalog"
	"github.com/yeremiapane/kitsu-storefront/checkout"
	"github.com/yeremiapane/kitsu-storefront/controllers"
	"github.com/yeremiapane/kitsu-storefront/middlewares"
	"github.com/yeremiapane/kitsu-storefront/view"
)

// Dependencies are the long-lived objects the routes dispatch into.
type Dependencies struct {
	Catalog *catalog.Cache
	Engine  *cart.Engine
	Handoff *checkout.Handoff
	Orders  controllers.OrderTracker
	Hub     *view.Hub

	AllowedOrigin  string
	RateLimit      int
	BackendTimeout time.Duration
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.MetricsMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.AllowedOrigin))
	r.Use(middlewares.LoggerMiddleware())

	menuCtrl := controllers.NewMenuController(deps.Catalog, deps.BackendTimeout)
	cartCtrl := controllers.NewCartController(deps.Engine)
	checkoutCtrl := controllers.NewCheckoutController(deps.Handoff, deps.Engine, deps.BackendTimeout)
	orderCtrl := controllers.NewOrderController(deps.Orders, deps.BackendTimeout)
	socketCtrl := controllers.NewCartSocketController(deps.Hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/ws/cart", middlewares.WebSocketOriginMiddleware(deps.AllowedOrigin), socketCtrl.Handle)

	api := r.Group("/")
	api.Use(middlewares.NewRateLimiter(deps.RateLimit, time.Second).RateLimit())
	{
		api.GET("/menu", menuCtrl.GetMenu)
		api.POST("/menu/refresh", menuCtrl.RefreshMenu)

		api.GET("/cart", cartCtrl.GetCart)
		api.DELETE("/cart", cartCtrl.ClearCart)
		api.POST("/cart/:action/:product_id", cartCtrl.Dispatch)

		api.POST("/checkout",
			middlewares.NewStrictRateLimiter(),
			middlewares.CheckoutLoggerMiddleware(),
			checkoutCtrl.Checkout,
		)

		api.GET("/orders/:order_id/status", orderCtrl.GetOrderStatus)
	}

	return r
}
