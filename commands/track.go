package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

func trackCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "track <order-id>",
		Short: "Show an order's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				tracking, err := app.Orders.GetOrderStatus(ctx, models.Identifier(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Order #%s: %s (%s)\n", tracking.OrderID, tracking.Status, utils.FormatBaht(tracking.TotalPrice))
				return nil
			})
		},
	}
}
