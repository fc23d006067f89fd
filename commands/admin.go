package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/view"
)

// sessionError points the user at login when the admin session is gone.
func sessionError(err error) error {
	if errors.Is(err, services.ErrUnauthorized) || errors.Is(err, services.ErrNotLoggedIn) {
		return fmt.Errorf("admin session ended, run `%s admin login`: %w", appName, err)
	}
	return err
}

func adminCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Order dashboard",
	}
	cmd.AddCommand(
		adminLoginCmd(s),
		adminLogoutCmd(s),
		adminOrdersCmd(s),
		adminSetStatusCmd(s),
		adminWatchCmd(s),
	)
	return cmd
}

func adminLoginCmd(s *session) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the order dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				if err := app.Admin.Login(ctx, username, password); err != nil {
					fmt.Fprintln(app.Out, "Login failed. Please try again.")
					return err
				}
				fmt.Fprintln(app.Out, "Logged in.")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func adminLogoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored admin token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				if err := app.Admin.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(app.Out, "Logged out.")
				return nil
			})
		},
	}
}

func adminOrdersCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(ctx context.Context, app *App) error {
				orders, err := app.Admin.ListOrders(ctx)
				if err != nil {
					return sessionError(err)
				}
				return view.RenderOrders(app.Out, orders)
			})
		},
	}
}

func adminSetStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <order-id> <status>",
		Short: "Change an order's status",
		Long:  "Change an order's status. Valid statuses: PENDING, PREPARING, DELIVERING, COMPLETED, CANCELLED.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := models.ParseAdminOrderStatus(args[1])
			if err != nil {
				return err
			}
			return s.withApp(func(ctx context.Context, app *App) error {
				id := models.Identifier(args[0])
				if err := app.Admin.UpdateStatus(ctx, id, status); err != nil {
					fmt.Fprintln(app.Out, "Could not update order status.")
					return sessionError(err)
				}
				fmt.Fprintf(app.Out, "Order #%s status updated to %s\n", id, status)
				return nil
			})
		},
	}
}

func adminWatchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Refresh the order list until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open()
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.Admin.LoggedIn() {
				return sessionError(services.ErrNotLoggedIn)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var lastErr error
			monitor := services.NewOrderMonitor(app.Admin, s.cfg.PollInterval, s.cfg.HTTPTimeout)
			monitor.OnOrders = func(orders []models.AdminOrder) {
				fmt.Fprintln(app.Out)
				view.RenderOrders(app.Out, orders)
			}
			monitor.OnError = func(err error) {
				lastErr = err
				fmt.Fprintln(app.Out, "Error loading orders.")
			}
			monitor.Start()

			select {
			case <-ctx.Done():
				monitor.Stop()
				<-monitor.Done()
				return nil
			case <-monitor.Done():
				return sessionError(lastErr)
			}
		},
	}
}
