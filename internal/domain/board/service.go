package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Service is the single authority over projects, stages and downloads.
// Every operation runs inside one repository transaction and persists
// before returning.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new board service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// ListProjects returns every project with its stages, in storage order.
func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := s.repo.View(ctx, func(tx Tx) error {
		var err error
		projects, err = loadProjects(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// GetProject fetches a project by id.
func (s *Service) GetProject(ctx context.Context, id int) (*Project, error) {
	var proj *Project
	err := s.repo.View(ctx, func(tx Tx) error {
		projects, err := loadProjects(ctx, tx)
		if err != nil {
			return err
		}
		i := projectIndex(projects, id)
		if i < 0 {
			return ErrProjectNotFound
		}
		proj = &projects[i]
		return nil
	})
	if err != nil {
		return nil, wrap("getting project", err)
	}
	return proj, nil
}

// CreateProject creates a project whose stages are seeded from the current
// download catalog.
func (s *Service) CreateProject(ctx context.Context, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}

	var proj *Project
	err := s.repo.Update(ctx, func(tx Tx) error {
		projects, err := loadProjects(ctx, tx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if strings.EqualFold(p.ProjectName, name) {
				return ErrDuplicateName
			}
		}

		downloads, err := loadDownloads(ctx, tx)
		if err != nil {
			return err
		}
		stages := make([]Stage, 0, len(downloads))
		for _, d := range downloads {
			stages = append(stages, d.Stage())
		}

		projects = append(projects, Project{
			ProjectID:   nextProjectID(projects),
			ProjectName: name,
			Stages:      stages,
		})
		if err := tx.PutProjects(ctx, projects); err != nil {
			return err
		}
		proj = &projects[len(projects)-1]
		return nil
	})
	if err != nil {
		return nil, wrap("creating project", err)
	}

	s.logger.Info("project created", "project_id", proj.ProjectID, "name", proj.ProjectName, "stages", len(proj.Stages))
	return proj, nil
}

// DeleteProject removes a project and returns the remaining ones. Deleting an
// unknown id is not an error.
func (s *Service) DeleteProject(ctx context.Context, id int) ([]Project, error) {
	var remaining []Project
	err := s.repo.Update(ctx, func(tx Tx) error {
		projects, err := loadProjects(ctx, tx)
		if err != nil {
			return err
		}
		before := len(projects)
		projects = slices.DeleteFunc(projects, func(p Project) bool { return p.ProjectID == id })
		if err := tx.PutProjects(ctx, projects); err != nil {
			return err
		}
		if len(projects) != before {
			s.logger.Info("project deleted", "project_id", id)
		}
		remaining = projects
		return nil
	})
	if err != nil {
		return nil, wrap("deleting project", err)
	}
	return remaining, nil
}

func loadProjects(ctx context.Context, tx Tx) ([]Project, error) {
	projects, err := tx.Projects(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []Project{}
	}
	for i := range projects {
		if projects[i].Stages == nil {
			projects[i].Stages = []Stage{}
		}
	}
	return projects, nil
}

func loadDownloads(ctx context.Context, tx Tx) ([]Download, error) {
	downloads, err := tx.Downloads(ctx)
	if err != nil {
		return nil, err
	}
	if downloads == nil {
		downloads = []Download{}
	}
	return downloads, nil
}

func projectIndex(projects []Project, id int) int {
	for i := range projects {
		if projects[i].ProjectID == id {
			return i
		}
	}
	return -1
}

func nextProjectID(projects []Project) int {
	next := 1
	for _, p := range projects {
		if p.ProjectID >= next {
			next = p.ProjectID + 1
		}
	}
	return next
}

// wrap adds operation context. Sentinels still match with errors.Is.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
