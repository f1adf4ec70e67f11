package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganot/stageboard/internal/domain/board"
)

func newStagesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stages",
		Aliases: []string{"stage"},
		Short:   "Manage the stages of a project",
	}

	cmd.AddCommand(newStageAddCommand(ctx))
	cmd.AddCommand(newStageStatusCommand(ctx))
	cmd.AddCommand(newStageCycleCommand(ctx))
	cmd.AddCommand(newStageMoveCommand(ctx))
	cmd.AddCommand(newStageDeleteCommand(ctx))

	return cmd
}

func newStageAddCommand(ctx *commandContext) *cobra.Command {
	var fileURL string
	cmd := &cobra.Command{
		Use:   "add <projectId> <name>",
		Short: "Append an ongoing stage to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID("projectId", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				stage, err := svc.AddStage(cmd.Context(), projectID, board.AddStageRequest{Name: args[1], FileURL: fileURL})
				if err != nil {
					return err
				}
				return printStage(cmd, ctx, "Added", stage)
			})
		},
	}
	cmd.Flags().StringVar(&fileURL, "file", "", "File link for the stage")
	return cmd
}

func newStageStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <projectId> <stageId> <ongoing|completed|incomplete>",
		Short: "Set a stage status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, stageID, err := parseStageArgs(args)
			if err != nil {
				return err
			}
			status, err := board.ParseStatus(args[2])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				stage, err := svc.SetStageStatus(cmd.Context(), projectID, stageID, status)
				if err != nil {
					return err
				}
				return printStage(cmd, ctx, "Updated", stage)
			})
		},
	}
}

func newStageCycleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cycle <projectId> <stageId>",
		Short: "Advance a stage to its next status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, stageID, err := parseStageArgs(args)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				stage, err := svc.CycleStageStatus(cmd.Context(), projectID, stageID)
				if err != nil {
					return err
				}
				return printStage(cmd, ctx, "Updated", stage)
			})
		},
	}
}

func newStageMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <projectId> <fromIndex> <toIndex>",
		Short: "Move a stage to another position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID("projectId", args[0])
			if err != nil {
				return err
			}
			from, err := parseID("fromIndex", args[1])
			if err != nil {
				return err
			}
			to, err := parseID("toIndex", args[2])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				stages, err := svc.ReorderStage(cmd.Context(), projectID, from, to)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, stages)
				}
				printStages(cmd, stages)
				return nil
			})
		},
	}
}

func newStageDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <projectId> <stageId>",
		Short: "Remove a stage from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, stageID, err := parseStageArgs(args)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *board.Service) error {
				stages, err := svc.DeleteStage(cmd.Context(), projectID, stageID)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, stages)
				}
				printStages(cmd, stages)
				return nil
			})
		},
	}
}

func parseStageArgs(args []string) (int, int, error) {
	projectID, err := parseID("projectId", args[0])
	if err != nil {
		return 0, 0, err
	}
	stageID, err := parseID("stageId", args[1])
	if err != nil {
		return 0, 0, err
	}
	return projectID, stageID, nil
}

func printStage(cmd *cobra.Command, ctx *commandContext, verb string, stage *board.Stage) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, stage)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s stage %d (%s): %s\n", verb, stage.ID, stage.Name, stage.Status)
	return nil
}
