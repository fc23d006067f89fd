package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/yeremiapane/kitsu-storefront/models"
)

// Badge is a count indicator. There may be several (header, mobile nav...).
type Badge interface {
	SetCount(n int)
	Hide()
}

// TextView renders the cart as plain text. Each Render writes one complete
// block, so rendering an unchanged snapshot twice writes the same bytes twice.
type TextView struct {
	mu     sync.Mutex
	out    io.Writer
	badges []Badge
}

func NewTextView(out io.Writer, badges ...Badge) *TextView {
	return &TextView{out: out, badges: badges}
}

func (v *TextView) Render(s models.Snapshot) {
	vm := Project(s)

	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprint(v.out, FormatCart(vm))

	for _, b := range v.badges {
		if vm.BadgeVisible {
			b.SetCount(vm.BadgeCount)
		} else {
			b.Hide()
		}
	}
}

// FormatCart lays the view model out as text.
func FormatCart(vm CartViewModel) string {
	var b strings.Builder
	if vm.Empty {
		b.WriteString(vm.EmptyMessage + "\n")
	} else {
		width := 0
		for _, r := range vm.Rows {
			if n := len([]rune(r.Name)); n > width {
				width = n
			}
		}
		for _, r := range vm.Rows {
			fmt.Fprintf(&b, "%-*s  x%-3d %12s   [%s]\n", width, r.Name, r.Quantity, r.Subtotal, r.ID)
		}
	}
	fmt.Fprintf(&b, "Total: %s\n", vm.Total)
	return b.String()
}

// CounterBadge is a Badge that keeps its state in memory. The CLI prints it in
// the prompt line; tests inspect it.
type CounterBadge struct {
	mu      sync.Mutex
	count   int
	visible bool
}

func (c *CounterBadge) SetCount(n int) {
	c.mu.Lock()
	c.count, c.visible = n, true
	c.mu.Unlock()
}

func (c *CounterBadge) Hide() {
	c.mu.Lock()
	c.count, c.visible = 0, false
	c.mu.Unlock()
}

// State returns the shown count and whether the badge is visible.
func (c *CounterBadge) State() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, c.visible
}

func (c *CounterBadge) String() string {
	n, ok := c.State()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%d)", n)
}
