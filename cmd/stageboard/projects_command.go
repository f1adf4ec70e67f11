package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganot/stageboard/internal/domain/board"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *board.Service) error {
				projects, err := svc.ListProjects(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, projects)
				}
				printProjects(cmd, projects)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <projectId>",
		Short: "Show a project and its stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("projectId", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				project, err := svc.GetProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, project)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Project %d: %s\n", project.ProjectID, project.ProjectName)
				printStages(cmd, project.Stages)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a project seeded with one stage per download",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withService(cmd, func(svc *board.Service) error {
				project, err := svc.CreateProject(cmd.Context(), name)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, project)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %d (%s) with %d stages\n",
					project.ProjectID, project.ProjectName, len(project.Stages))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <projectId>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("projectId", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				projects, err := svc.DeleteProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, projects)
				}
				printProjects(cmd, projects)
				return nil
			})
		},
	})

	return cmd
}

func printProjects(cmd *cobra.Command, projects []board.Project) {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		completed := 0
		for _, s := range p.Stages {
			if s.Status == board.StatusCompleted {
				completed++
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(p.ProjectID),
			p.ProjectName,
			strconv.Itoa(len(p.Stages)),
			strconv.Itoa(completed),
		})
	}
	printTable(cmd, []string{"ID", "Name", "Stages", "Completed"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight})
}

func printStages(cmd *cobra.Command, stages []board.Stage) {
	rows := make([][]string, 0, len(stages))
	for i, s := range stages {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(s.ID),
			s.Name,
			string(s.Status),
			s.FileURL,
		})
	}
	printTable(cmd, []string{"#", "ID", "Name", "Status", "File"}, rows,
		[]columnAlignment{alignRight, alignRight})
}
