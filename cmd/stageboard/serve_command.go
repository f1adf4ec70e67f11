package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ganot/stageboard/internal/app"
	"github.com/ganot/stageboard/internal/config"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var stdio bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if stdio {
				cfg.Transport.Mode = config.TransportStdio
			}

			logger, logCloser, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer logCloser.Close()

			a, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.Run(runCtx)
		},
	}
	cmd.Flags().BoolVar(&stdio, "stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
	return cmd
}
