package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

func checkoutCmd(s *session) *cobra.Command {
	var customer models.CustomerInfo

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart and get the payment link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				receipt, err := app.Handoff().Submit(ctx, customer, app.Engine.Snapshot())
				if err != nil {
					fmt.Fprintln(app.Out, "Your order could not be placed. Your cart has been kept, please try again.")
					return err
				}
				fmt.Fprintf(app.Out, "Total charged: %s\n", utils.FormatBaht(receipt.Total))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&customer.Name, "name", "", "Customer name")
	cmd.Flags().StringVar(&customer.Phone, "phone", "", "Customer phone")
	cmd.Flags().StringVar(&customer.Address, "address", "", "Delivery address")
	cmd.Flags().StringVar(&customer.Email, "email", "", "Email for the receipt")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	return cmd
}
