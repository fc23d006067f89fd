package cart

import "github.com/yeremiapane/kitsu-storefront/models"

// CartView presents a cart snapshot. Render is called after every mutation
// while the engine holds its lock, so implementations must not call back
// into the engine and must not block without a bound.
type CartView interface {
	Render(snapshot models.Snapshot)
}

// CartViewFunc adapts a function to CartView.
type CartViewFunc func(models.Snapshot)

func (f CartViewFunc) Render(s models.Snapshot) { f(s) }
