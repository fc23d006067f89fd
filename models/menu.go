package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Identifier is a backend-assigned ID. The backend emits numeric IDs but the
// client treats them as opaque strings, so 5, 5.0 and "5" all decode to "5".
type Identifier string

func (id *Identifier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = Identifier(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid identifier %s", string(b))
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("invalid identifier %s: %w", string(b), err)
	}
	*id = Identifier(d.String())
	return nil
}

func (id Identifier) String() string {
	return string(id)
}

// CatalogItem is one purchasable product as listed by the menu endpoint.
type CatalogItem struct {
	ID       Identifier      `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"image_url,omitempty"`
}

// Image returns the image URL or an empty string when the item has none.
func (m CatalogItem) Image() string {
	if m.ImageURL == nil {
		return ""
	}
	return *m.ImageURL
}
