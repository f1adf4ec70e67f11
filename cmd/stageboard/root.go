package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	config  string
	backend string
	dataDir string
	dbPath  string
	json    bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags
	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "stageboard",
		Short:         "Track projects, their stages and the download catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path (YAML or TOML)")
	pf.StringVar(&flags.backend, "backend", "", "Store backend: jsonfile or sqlite")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Directory holding projects.json and downloads.json")
	pf.StringVar(&flags.dbPath, "db", "", "SQLite database path")
	pf.BoolVar(&flags.json, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newProjectsCommand(ctx))
	rootCmd.AddCommand(newStagesCommand(ctx))
	rootCmd.AddCommand(newDownloadsCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))

	return rootCmd
}
