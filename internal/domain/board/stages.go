package board

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// AddStage appends a new ongoing stage to a project.
func (s *Service) AddStage(ctx context.Context, projectID int, req AddStageRequest) (*Stage, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: stage name is required", ErrInvalidInput)
	}

	var stage *Stage
	err := s.updateProject(ctx, projectID, func(p *Project) error {
		p.Stages = append(p.Stages, Stage{
			ID:      p.NextStageID(),
			Name:    req.Name,
			FileURL: req.FileURL,
			Status:  StatusOngoing,
		})
		stage = &p.Stages[len(p.Stages)-1]
		return nil
	})
	if err != nil {
		return nil, wrap("adding stage", err)
	}

	s.logger.Info("stage added", "project_id", projectID, "stage_id", stage.ID, "name", stage.Name)
	return stage, nil
}

// SetStageStatus overwrites a stage's status in place.
func (s *Service) SetStageStatus(ctx context.Context, projectID, stageID int, status Status) (*Stage, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("setting stage status: %w: %q", ErrInvalidStatus, status)
	}
	return s.changeStatus(ctx, projectID, stageID, func(Status) Status { return status })
}

// CycleStageStatus advances a stage to its next status.
func (s *Service) CycleStageStatus(ctx context.Context, projectID, stageID int) (*Stage, error) {
	return s.changeStatus(ctx, projectID, stageID, Status.Next)
}

func (s *Service) changeStatus(ctx context.Context, projectID, stageID int, next func(Status) Status) (*Stage, error) {
	var stage *Stage
	err := s.updateProject(ctx, projectID, func(p *Project) error {
		i := p.StageIndex(stageID)
		if i < 0 {
			return ErrStageNotFound
		}
		p.Stages[i].Status = next(p.Stages[i].Status)
		stage = &p.Stages[i]
		return nil
	})
	if err != nil {
		return nil, wrap("setting stage status", err)
	}

	s.logger.Info("stage status changed", "project_id", projectID, "stage_id", stageID, "status", stage.Status)
	return stage, nil
}

// ReorderStage moves the stage at index from to index to, shifting the
// stages in between.
func (s *Service) ReorderStage(ctx context.Context, projectID, from, to int) ([]Stage, error) {
	var stages []Stage
	err := s.updateProject(ctx, projectID, func(p *Project) error {
		n := len(p.Stages)
		if from < 0 || from >= n || to < 0 || to >= n {
			return fmt.Errorf("%w: move %d -> %d with %d stages", ErrIndexOutOfRange, from, to, n)
		}
		moved := p.Stages[from]
		reordered := make([]Stage, 0, n)
		reordered = append(reordered, p.Stages[:from]...)
		reordered = append(reordered, p.Stages[from+1:]...)
		p.Stages = slices.Insert(reordered, to, moved)
		stages = p.Stages
		return nil
	})
	if err != nil {
		return nil, wrap("reordering stages", err)
	}

	s.logger.Debug("stage moved", "project_id", projectID, "from", from, "to", to)
	return stages, nil
}

// DeleteStage removes a stage and returns the project's remaining stages.
// Deleting an unknown stage id is not an error.
func (s *Service) DeleteStage(ctx context.Context, projectID, stageID int) ([]Stage, error) {
	var stages []Stage
	err := s.updateProject(ctx, projectID, func(p *Project) error {
		p.Stages = slices.DeleteFunc(p.Stages, func(st Stage) bool { return st.ID == stageID })
		stages = p.Stages
		return nil
	})
	if err != nil {
		return nil, wrap("deleting stage", err)
	}
	return stages, nil
}

// updateProject loads the projects document, applies fn to one project and
// writes the document back.
func (s *Service) updateProject(ctx context.Context, projectID int, fn func(p *Project) error) error {
	return s.repo.Update(ctx, func(tx Tx) error {
		projects, err := loadProjects(ctx, tx)
		if err != nil {
			return err
		}
		i := projectIndex(projects, projectID)
		if i < 0 {
			return ErrProjectNotFound
		}
		if err := fn(&projects[i]); err != nil {
			return err
		}
		return tx.PutProjects(ctx, projects)
	})
}
