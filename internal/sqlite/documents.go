package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/ganot/stageboard/internal/repository"
)

const (
	projectsDocument  = "projects"
	downloadsDocument = "downloads"
)

// DocumentRepository implements board.Repository by keeping the projects and
// downloads JSON documents as rows. An Update commits all of its writes or
// none of them.
type DocumentRepository struct {
	db *DB
	mu sync.Mutex
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Close closes the underlying database.
func (r *DocumentRepository) Close() error {
	return r.db.Close()
}

// View runs fn in a transaction that rejects writes.
func (r *DocumentRepository) View(ctx context.Context, fn func(tx board.Tx) error) error {
	return r.run(ctx, false, fn)
}

// Update runs fn in a write transaction, committing if fn succeeds.
func (r *DocumentRepository) Update(ctx context.Context, fn func(tx board.Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run(ctx, true, fn)
}

func (r *DocumentRepository) run(ctx context.Context, writable bool, fn func(tx board.Tx) error) error {
	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&documentTx{tx: sqlTx, writable: writable}); err != nil {
		return err
	}

	if !writable {
		return nil
	}
	if err := sqlTx.Commit(); err != nil {
		return storageError("commit transaction", err)
	}
	return nil
}

type documentTx struct {
	tx       *sql.Tx
	writable bool
}

func (t *documentTx) Projects(ctx context.Context) ([]board.Project, error) {
	projects := []board.Project{}
	if err := t.get(ctx, projectsDocument, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (t *documentTx) Downloads(ctx context.Context) ([]board.Download, error) {
	downloads := []board.Download{}
	if err := t.get(ctx, downloadsDocument, &downloads); err != nil {
		return nil, err
	}
	return downloads, nil
}

func (t *documentTx) PutProjects(ctx context.Context, projects []board.Project) error {
	if projects == nil {
		projects = []board.Project{}
	}
	return t.put(ctx, projectsDocument, projects)
}

func (t *documentTx) PutDownloads(ctx context.Context, downloads []board.Download) error {
	if downloads == nil {
		downloads = []board.Download{}
	}
	return t.put(ctx, downloadsDocument, downloads)
}

func (t *documentTx) get(ctx context.Context, name string, v any) error {
	query := `
		SELECT body
		FROM documents
		WHERE name = ?
	`

	var body string
	err := t.tx.QueryRowContext(ctx, query, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return storageError("read "+name, err)
	}

	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrCorrupt, name, err)
	}
	return nil
}

func (t *documentTx) put(ctx context.Context, name string, v any) error {
	if !t.writable {
		return repository.ErrReadOnly
	}

	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", repository.ErrStorage, name, err)
	}

	query := `
		INSERT INTO documents (name, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`

	if _, err := t.tx.ExecContext(ctx, query, name, string(body), time.Now().UTC()); err != nil {
		return storageError("write "+name, err)
	}
	return nil
}
