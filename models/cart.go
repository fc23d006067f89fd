package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one product in the cart. Name and Price are copied from the
// catalog when the line is created and never refreshed afterwards.
type CartLine struct {
	ID       Identifier      `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product, in insertion order.
type Cart struct {
	Lines []CartLine
}

// Find returns the index of the line for id.
func (c *Cart) Find(id Identifier) (int, bool) {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Total is recomputed from the lines on every call.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the sum of all quantities.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone returns a deep copy so callers can't mutate the engine's state.
func (c Cart) Clone() Cart {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Validate checks the cart invariants. Used when reading persisted state that
// may have been written by an older client or edited by hand.
func (c Cart) Validate() error {
	seen := make(map[Identifier]struct{}, len(c.Lines))
	for i, l := range c.Lines {
		if l.ID == "" {
			return fmt.Errorf("line %d: empty id", i)
		}
		if l.Quantity < 1 {
			return fmt.Errorf("line %d (%s): quantity %d", i, l.ID, l.Quantity)
		}
		if l.Price.IsNegative() {
			return fmt.Errorf("line %d (%s): negative price", i, l.ID)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("line %d: duplicate id %s", i, l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return nil
}

// Snapshot is the read model handed to views and to checkout.
type Snapshot struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (c Cart) Snapshot() Snapshot {
	clone := c.Clone()
	return Snapshot{
		Lines: clone.Lines,
		Total: c.Total(),
		Count: c.Count(),
	}
}
