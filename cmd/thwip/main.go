package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/thwip/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "thwip: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "thwip",
		Short:         "Browse a comic catalogue from the terminal",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunBrowser(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	root.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (optional)")
	root.PersistentFlags().StringVar(&opts.APIBase, "api", "", "catalogue API base URL (optional)")
	root.Flags().StringVar(&opts.StartPath, "path", "", "in-app path to open, e.g. /publisher")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalogue as HTML pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunServer(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}
	serve.Flags().StringVar(&opts.ListenAddr, "listen", "", "listen address (optional)")
	root.AddCommand(serve)

	return root
}
