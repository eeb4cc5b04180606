// storectl is the back-office CLI for the storefront: it works directly on
// the configured blob store, so it sees the same catalog, orders and admin
// session as the API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/safar/solestride/internal/auth"
	"github.com/safar/solestride/internal/config"
	"github.com/safar/solestride/internal/kv"
	"github.com/safar/solestride/internal/logging"
	"github.com/safar/solestride/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	verbose bool
	output  string

	cfg    *config.Config
	logger *zap.Logger
	blobs  kv.Store
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Administer the Sole Stride storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format: table, json or yaml")

	root.AddCommand(
		a.seedCmd(),
		a.productsCmd(),
		a.ordersCmd(),
		a.salesCmd(),
		a.describeCmd(),
		a.loginCmd(),
		a.logoutCmd(),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	switch a.output {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	if a.logger, err = logging.New(level, "console"); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if a.blobs, err = kv.Open(ctx, cfg); err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.blobs != nil {
		a.blobs.Close()
		a.blobs = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) storefront(ctx context.Context) (*store.Storefront, error) {
	return store.Open(ctx, a.blobs, store.WithLogger(a.logger.Named("store")))
}

func (a *app) auth() *auth.Service {
	return auth.NewService(a.blobs, a.logger.Named("auth"))
}

func main() {
	a := &app{}
	err := newRootCmd(a).ExecuteContext(context.Background())
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
