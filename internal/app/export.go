package app

import (
	"context"
	"fmt"

	"github.com/ganot/stageboard/internal/domain/board"
)

// ExportResult counts what Export copied.
type ExportResult struct {
	Projects  int `json:"projects"`
	Downloads int `json:"downloads"`
}

// Export copies both documents from src into dst, replacing what dst held.
func Export(ctx context.Context, src, dst board.Repository) (ExportResult, error) {
	var (
		projects  []board.Project
		downloads []board.Download
	)
	err := src.View(ctx, func(tx board.Tx) error {
		var err error
		if projects, err = tx.Projects(ctx); err != nil {
			return err
		}
		downloads, err = tx.Downloads(ctx)
		return err
	})
	if err != nil {
		return ExportResult{}, fmt.Errorf("read source: %w", err)
	}

	err = dst.Update(ctx, func(tx board.Tx) error {
		if err := tx.PutDownloads(ctx, downloads); err != nil {
			return err
		}
		return tx.PutProjects(ctx, projects)
	})
	if err != nil {
		return ExportResult{}, fmt.Errorf("write destination: %w", err)
	}

	return ExportResult{Projects: len(projects), Downloads: len(downloads)}, nil
}
