package board

import "context"

// Tx reads and rewrites the persisted documents inside one repository
// transaction. Each Put replaces the whole document.
type Tx interface {
	Projects(ctx context.Context) ([]Project, error)
	Downloads(ctx context.Context) ([]Download, error)
	PutProjects(ctx context.Context, projects []Project) error
	PutDownloads(ctx context.Context, downloads []Download) error
}

// Repository provides serialized access to the project and download
// documents. Update callbacks run one at a time.
type Repository interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
}
