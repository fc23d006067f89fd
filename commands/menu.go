package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/kitsu-storefront/view"
)

func menuCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				if err := app.LoadMenu(ctx); err != nil {
					return err
				}
				return view.RenderMenu(app.Out, app.Catalog.Items())
			})
		},
	}
}
