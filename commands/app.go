// Package commands is the storefront command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/catalog"
	"github.com/yeremiapane/kitsu-storefront/checkout"
	"github.com/yeremiapane/kitsu-storefront/config"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/storage"
	"github.com/yeremiapane/kitsu-storefront/view"
	"gorm.io/gorm"
)

// App wires one storefront session: storage, backend clients and the cart.
type App struct {
	Config *config.Config
	Out    io.Writer

	db        *gorm.DB
	CartStore *storage.CartStore
	Tokens    *storage.TokenStore

	Catalog  *catalog.Cache
	Engine   *cart.Engine
	Orders   *services.OrderService
	Payments *services.PaymentService
	Admin    *services.AdminService
	Badge    *view.CounterBadge
}

// NewApp opens the store and builds the engine with the given views.
func NewApp(cfg *config.Config, out io.Writer, views ...cart.CartView) (*App, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	kv := storage.NewGormStore(db)

	a := &App{
		Config:    cfg,
		Out:       out,
		db:        db,
		CartStore: storage.NewCartStore(kv, cfg.CartKey),
		Tokens:    storage.NewTokenStore(kv, cfg.TokenKey, cfg.TokenSecret),
		Catalog:   catalog.NewCache(services.NewMenuService(cfg.MenuURL, cfg.HTTPTimeout)),
		Orders:    services.NewOrderService(cfg.APIURL, cfg.HTTPTimeout),
		Payments:  services.NewPaymentService(cfg.APIURL, cfg.HTTPTimeout),
		Badge:     &view.CounterBadge{},
	}
	a.Admin = services.NewAdminService(cfg.AdminURL, cfg.HTTPTimeout, a.Tokens)
	a.Engine = cart.NewEngine(a.Catalog, a.CartStore, views...)
	return a, nil
}

// Handoff builds a checkout handoff that reports the payment URL on Out.
func (a *App) Handoff() *checkout.Handoff {
	return checkout.NewHandoff(a.Orders, a.Payments, a.Engine, func(r models.OrderReceipt) {
		fmt.Fprintf(a.Out, "Order #%s placed. Continue to payment: %s\n", r.OrderID, r.PaymentURL)
	})
}

// LoadMenu fills the catalog. Failure is reported with the user-facing
// message and returned.
func (a *App) LoadMenu(ctx context.Context) error {
	if _, err := a.Catalog.Load(ctx); err != nil {
		fmt.Fprintln(a.Out, catalog.LoadErrorMessage)
		return err
	}
	return nil
}

// ShowCart prints the cart and the badge line.
func (a *App) ShowCart() {
	view.NewTextView(a.Out, a.Badge).Render(a.Engine.Snapshot())
	if badge := a.Badge.String(); badge != "" {
		fmt.Fprintf(a.Out, "Items in cart %s\n", badge)
	}
}

func (a *App) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
