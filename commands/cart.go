package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/models"
)

func cartCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				app.ShowCart()
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunE,
	})

	for _, action := range cart.Actions {
		cmd.AddCommand(cartActionCmd(s, action))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				if err := app.Engine.Clear(); err != nil {
					return err
				}
				app.ShowCart()
				return nil
			})
		},
	})

	return cmd
}

var actionHelp = map[cart.Action]string{
	cart.ActionAdd:      "Add one of a product",
	cart.ActionIncrease: "Increase a product's quantity by one",
	cart.ActionDecrease: "Decrease a product's quantity by one",
	cart.ActionRemove:   "Remove a product from the cart",
}

func cartActionCmd(s *session, action cart.Action) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <product-id>",
		Short: actionHelp[action],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				if action == cart.ActionAdd || action == cart.ActionIncrease {
					if err := app.LoadMenu(ctx); err != nil {
						return err
					}
				}

				err := app.Engine.Dispatch(action, models.Identifier(args[0]))
				if errors.Is(err, cart.ErrUnknownProduct) {
					fmt.Fprintf(app.Out, "No product with id %s on the menu.\n", args[0])
				}
				app.ShowCart()
				return err
			})
		},
	}
}
