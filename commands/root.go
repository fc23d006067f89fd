package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/config"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

const appName = "storefront"

var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

// session is shared by the sub-commands of one invocation.
type session struct {
	out      io.Writer
	logLevel string
	cfg      *config.Config
}

// open builds an App for the current invocation; the caller closes it.
func (s *session) open(views ...cart.CartView) (*App, error) {
	return NewApp(s.cfg, s.out, views...)
}

// withApp runs fn with an open App and closes it afterwards.
func (s *session) withApp(fn func(ctx context.Context, app *App) error) error {
	app, err := s.open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*s.cfg.HTTPTimeout)
	defer cancel()
	return fn(ctx, app)
}

// NewRootCmd builds the CLI. Output goes to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	s := &session{out: out}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Kitsu restaurant storefront",
		Long: `Storefront browses the Kitsu menu, keeps a persistent cart, places
orders and hands off to payment. It can also serve the cart to a browser
front end and run the admin order dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if s.logLevel != "" {
				cfg.LogLevel = s.logLevel
			}
			utils.InitLogger(cfg.LogLevel)
			// stdout carries command output
			utils.InfoLogger.SetOutput(os.Stderr)
			s.cfg = cfg
			return nil
		},
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		menuCmd(s),
		cartCmd(s),
		checkoutCmd(s),
		trackCmd(s),
		adminCmd(s),
		serveCmd(s),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}
