package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/kitsu-storefront/models"
)

// Action names a cart command coming from the UI.
type Action string

const (
	ActionAdd      Action = "add"
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionRemove   Action = "remove"
)

var ErrUnknownAction = errors.New("unknown cart action")

// Actions lists every supported action.
var Actions = []Action{ActionAdd, ActionIncrease, ActionDecrease, ActionRemove}

func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Dispatch runs the engine method bound to the action.
func (e *Engine) Dispatch(action Action, id models.Identifier) error {
	var op func(models.Identifier) error
	switch action {
	case ActionAdd:
		op = e.AddItem
	case ActionIncrease:
		op = e.IncreaseQuantity
	case ActionDecrease:
		op = e.DecreaseQuantity
	case ActionRemove:
		op = e.RemoveItem
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return op(id)
}
