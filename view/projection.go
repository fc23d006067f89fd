// Package view turns cart snapshots into something a person can look at.
package view

import (
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// EmptyCartMessage is shown instead of the line list when the cart is empty.
const EmptyCartMessage = "Your cart is empty"

// LineRow is one rendered cart line.
type LineRow struct {
	ID       models.Identifier `json:"id"`
	Name     string            `json:"name"`
	Quantity int               `json:"quantity"`
	Subtotal string            `json:"subtotal"`
}

// CartViewModel is everything a cart UI needs, already formatted.
type CartViewModel struct {
	Rows         []LineRow `json:"rows"`
	Empty        bool      `json:"empty"`
	EmptyMessage string    `json:"empty_message,omitempty"`
	Total        string    `json:"total"`
	BadgeCount   int       `json:"badge_count"`
	BadgeVisible bool      `json:"badge_visible"`
}

// Project is a pure function of the snapshot.
func Project(s models.Snapshot) CartViewModel {
	vm := CartViewModel{
		Rows:         make([]LineRow, 0, len(s.Lines)),
		Total:        utils.FormatBaht(s.Total),
		BadgeCount:   s.Count,
		BadgeVisible: s.Count > 0,
	}

	if len(s.Lines) == 0 {
		vm.Empty = true
		vm.EmptyMessage = EmptyCartMessage
		return vm
	}

	for _, l := range s.Lines {
		vm.Rows = append(vm.Rows, LineRow{
			ID:       l.ID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Subtotal: utils.FormatBaht(l.Subtotal()),
		})
	}
	return vm
}
