package board

import (
	"context"
	"fmt"
	"slices"
)

// ListDownloads returns the download catalog.
func (s *Service) ListDownloads(ctx context.Context) ([]Download, error) {
	var downloads []Download
	err := s.repo.View(ctx, func(tx Tx) error {
		var err error
		downloads, err = loadDownloads(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing downloads: %w", err)
	}
	return downloads, nil
}

// CreateDownload appends a download to the catalog and clones it as an
// incomplete stage onto every existing project. Projects created later pick
// the download up from the catalog instead.
func (s *Service) CreateDownload(ctx context.Context, req CreateDownloadRequest) ([]Download, error) {
	var catalog []Download
	var fanout int
	err := s.repo.Update(ctx, func(tx Tx) error {
		downloads, err := loadDownloads(ctx, tx)
		if err != nil {
			return err
		}
		projects, err := loadProjects(ctx, tx)
		if err != nil {
			return err
		}

		d := Download{
			ID:          nextDownloadID(downloads, projects),
			Name:        req.Name,
			Description: req.Description,
			FileURL:     req.FileURL,
		}
		downloads = append(downloads, d)
		if err := tx.PutDownloads(ctx, downloads); err != nil {
			return err
		}

		for i := range projects {
			projects[i].Stages = append(projects[i].Stages, d.Stage())
		}
		if err := tx.PutProjects(ctx, projects); err != nil {
			return err
		}

		catalog = downloads
		fanout = len(projects)
		return nil
	})
	if err != nil {
		return nil, wrap("creating download", err)
	}

	last := catalog[len(catalog)-1]
	s.logger.Info("download created", "download_id", last.ID, "name", last.Name, "projects", fanout)
	return catalog, nil
}

// DeleteDownload removes a download from the catalog. Stages already cloned
// from it stay in their projects.
func (s *Service) DeleteDownload(ctx context.Context, id int) ([]Download, error) {
	var remaining []Download
	err := s.repo.Update(ctx, func(tx Tx) error {
		downloads, err := loadDownloads(ctx, tx)
		if err != nil {
			return err
		}
		downloads = slices.DeleteFunc(downloads, func(d Download) bool { return d.ID == id })
		if err := tx.PutDownloads(ctx, downloads); err != nil {
			return err
		}
		remaining = downloads
		return nil
	})
	if err != nil {
		return nil, wrap("deleting download", err)
	}
	return remaining, nil
}

// nextDownloadID returns an id above every download and every stage id in
// every project, so the fanned out stage is unique in each project.
func nextDownloadID(downloads []Download, projects []Project) int {
	next := 1
	for _, d := range downloads {
		if d.ID >= next {
			next = d.ID + 1
		}
	}
	for i := range projects {
		if id := projects[i].NextStageID(); id > next {
			next = id
		}
	}
	return next
}
