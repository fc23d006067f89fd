// Package cart owns the shopping cart state and its mutations.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/kitsu-storefront/metrics"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

var ErrUnknownProduct = errors.New("product not found in catalog")

// Resolver looks products up in the loaded catalog.
type Resolver interface {
	Resolve(id models.Identifier) (models.CatalogItem, bool)
}

// Store persists the whole cart. storage.CartStore implements it.
type Store interface {
	Load() models.Cart
	Save(cart models.Cart) error
}

// Engine is the single owner of the cart. Every mutation is saved and then
// rendered to all attached views.
type Engine struct {
	catalog Resolver
	store   Store

	mu    sync.Mutex
	cart  models.Cart
	views []CartView
}

// NewEngine loads the persisted cart and renders it once to the views.
func NewEngine(catalog Resolver, store Store, views ...CartView) *Engine {
	e := &Engine{
		catalog: catalog,
		store:   store,
		cart:    store.Load(),
		views:   views,
	}
	e.render()
	return e
}

// AttachView adds a view and renders the current cart to it.
func (e *Engine) AttachView(v CartView) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.views = append(e.views, v)
	v.Render(e.cart.Snapshot())
}

// AddItem increments the product's line, creating it with quantity 1 and a
// snapshot of the catalog name and price if absent. A product the catalog
// can't resolve leaves the cart unchanged and returns ErrUnknownProduct.
func (e *Engine) AddItem(id models.Identifier) error {
	return e.increment(ActionAdd, id)
}

// IncreaseQuantity has the same contract as AddItem.
func (e *Engine) IncreaseQuantity(id models.Identifier) error {
	return e.increment(ActionIncrease, id)
}

func (e *Engine) increment(action Action, id models.Identifier) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, ok := e.catalog.Resolve(id)
	if !ok {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"action":     action,
			"product_id": id,
		}).Warn("Product not found in catalog, ignoring")
		metrics.CartOperations.WithLabelValues(string(action), "unknown_product").Inc()
		return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}

	if i, found := e.cart.Find(id); found {
		e.cart.Lines[i].Quantity++
	} else {
		e.cart.Lines = append(e.cart.Lines, models.CartLine{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: 1,
		})
	}
	return e.commit(action, id)
}

// DecreaseQuantity removes one unit; the line disappears at zero. Absent
// products are a no-op.
func (e *Engine) DecreaseQuantity(id models.Identifier) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, found := e.cart.Find(id)
	if !found {
		metrics.CartOperations.WithLabelValues(string(ActionDecrease), "noop").Inc()
		return nil
	}

	if e.cart.Lines[i].Quantity <= 1 {
		e.removeAt(i)
	} else {
		e.cart.Lines[i].Quantity--
	}
	return e.commit(ActionDecrease, id)
}

// RemoveItem drops the product's line whatever its quantity.
func (e *Engine) RemoveItem(id models.Identifier) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, found := e.cart.Find(id)
	if !found {
		metrics.CartOperations.WithLabelValues(string(ActionRemove), "noop").Inc()
		return nil
	}
	e.removeAt(i)
	return e.commit(ActionRemove, id)
}

// Clear empties the cart and persists the empty state.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart = models.Cart{}
	return e.commit("clear", "")
}

// Snapshot returns a copy of the current lines with total and count.
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Snapshot()
}

// Reload replaces the in-memory cart with the persisted one. Used when
// another process has written the cart.
func (e *Engine) Reload() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart = e.store.Load()
	utils.InfoLogger.WithField("lines", len(e.cart.Lines)).Info("Cart reloaded from storage")
	e.render()
}

func (e *Engine) removeAt(i int) {
	e.cart.Lines = append(e.cart.Lines[:i], e.cart.Lines[i+1:]...)
}

// commit persists and re-renders. A failed save keeps the in-memory change so
// the views still match what the user did.
func (e *Engine) commit(action Action, id models.Identifier) error {
	log := utils.InfoLogger.WithFields(logrus.Fields{
		"action":     action,
		"product_id": id,
		"count":      e.cart.Count(),
	})

	var err error
	if saveErr := e.store.Save(e.cart); saveErr != nil {
		utils.ErrorLogger.WithError(saveErr).WithField("action", action).Error("Failed to persist cart")
		metrics.CartOperations.WithLabelValues(string(action), "persist_error").Inc()
		err = fmt.Errorf("save cart: %w", saveErr)
	} else {
		metrics.CartOperations.WithLabelValues(string(action), "ok").Inc()
		log.Debug("Cart updated")
	}

	e.render()
	return err
}

func (e *Engine) render() {
	snap := e.cart.Snapshot()
	for _, v := range e.views {
		v.Render(snap)
	}
}
