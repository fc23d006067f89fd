package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/kitsu-storefront/router"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/utils"
	"github.com/yeremiapane/kitsu-storefront/view"
)

func serveCmd(s *session) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cart to a browser front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gin.Mode() != gin.TestMode && s.cfg.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			if addr == "" {
				addr = s.cfg.ListenAddr
			}

			hub := view.NewHub()
			app, err := s.open(hub)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			loadCtx, cancel := context.WithTimeout(ctx, s.cfg.HTTPTimeout)
			if _, err := app.Catalog.Load(loadCtx); err != nil {
				utils.ErrorLogger.WithError(err).Warn("Menu not loaded at startup, POST /menu/refresh to retry")
			}
			cancel()

			monitor := services.NewChangeMonitor(app.CartStore, app.Engine, s.cfg.WatchInterval)
			monitor.Start()
			defer monitor.Stop()

			r := router.SetupRouter(router.Dependencies{
				Catalog:        app.Catalog,
				Engine:         app.Engine,
				Handoff:        app.Handoff(),
				Orders:         app.Orders,
				Hub:            hub,
				AllowedOrigin:  s.cfg.AllowedOrigin,
				RateLimit:      s.cfg.RateLimit,
				BackendTimeout: 2 * s.cfg.HTTPTimeout,
			})

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				utils.InfoLogger.Infof("Listening on %s", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			utils.InfoLogger.Info("Shutting down")
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from STOREFRONT_LISTEN_ADDR)")
	return cmd
}
