package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganot/stageboard/internal/app"
	"github.com/ganot/stageboard/internal/config"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var target config.StoreConfig
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy projects and downloads into another store backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if target.Backend == "" {
				return fmt.Errorf("--to is required")
			}
			if target.DataDir == "" {
				target.DataDir = cfg.Store.DataDir
			}
			if target.DBPath == "" {
				target.DBPath = cfg.Store.DBPath
			}
			if target == cfg.Store {
				return fmt.Errorf("export target is the configured store")
			}

			src, err := app.OpenStore(cfg.Store)
			if err != nil {
				return err
			}
			defer src.Close()

			dst, err := app.OpenStore(target)
			if err != nil {
				return err
			}
			defer dst.Close()

			res, err := app.Export(cmd.Context(), src, dst)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d project(s) and %d download(s) from %s to %s\n",
				res.Projects, res.Downloads, cfg.Store.Backend, target.Backend)
			return nil
		},
	}
	cmd.Flags().StringVar(&target.Backend, "to", "", "Target backend: jsonfile or sqlite")
	cmd.Flags().StringVar(&target.DataDir, "to-data-dir", "", "Target data directory for jsonfile")
	cmd.Flags().StringVar(&target.DBPath, "to-db", "", "Target database path for sqlite")
	return cmd
}
