package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ganot/stageboard/internal/domain/board"
)

func newDownloadsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "downloads",
		Aliases: []string{"download"},
		Short:   "Manage the download catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *board.Service) error {
				downloads, err := svc.ListDownloads(cmd.Context())
				if err != nil {
					return err
				}
				return printDownloads(cmd, ctx, downloads)
			})
		},
	})

	var description, fileURL string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a download and a matching stage to every project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *board.Service) error {
				downloads, err := svc.CreateDownload(cmd.Context(), board.CreateDownloadRequest{
					Name:        args[0],
					Description: description,
					FileURL:     fileURL,
				})
				if err != nil {
					return err
				}
				return printDownloads(cmd, ctx, downloads)
			})
		},
	}
	add.Flags().StringVar(&description, "description", "", "Download description")
	add.Flags().StringVar(&fileURL, "file", "", "File link")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a download. Project stages are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				downloads, err := svc.DeleteDownload(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printDownloads(cmd, ctx, downloads)
			})
		},
	})

	return cmd
}

func printDownloads(cmd *cobra.Command, ctx *commandContext, downloads []board.Download) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, downloads)
	}
	rows := make([][]string, 0, len(downloads))
	for _, d := range downloads {
		rows = append(rows, []string{strconv.Itoa(d.ID), d.Name, d.Description, d.FileURL})
	}
	printTable(cmd, []string{"ID", "Name", "Description", "File"}, rows, []columnAlignment{alignRight})
	fmt.Fprintf(cmd.OutOrStdout(), "%d download(s)\n", len(downloads))
	return nil
}
