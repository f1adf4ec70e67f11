// Package jsonfile stores the project and download documents as two JSON
// files in a data directory.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/ganot/stageboard/internal/repository"
	"github.com/gofrs/flock"
)

const (
	// ProjectsFile holds the array of projects.
	ProjectsFile = "projects.json"
	// DownloadsFile holds the array of downloads.
	DownloadsFile = "downloads.json"

	lockFile       = ".stageboard.lock"
	lockRetryDelay = 25 * time.Millisecond
)

// Store implements board.Repository over two JSON files. Writers are
// serialized in-process by mu and across processes by an exclusive flock.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", repository.ErrStorage, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Close releases nothing; file handles are scoped to each transaction.
func (s *Store) Close() error {
	return nil
}

// View runs fn with shared locks held. Writes inside fn fail.
func (s *Store) View(ctx context.Context, fn func(tx board.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unlock, err := s.acquire(ctx, false)
	if err != nil {
		return err
	}
	defer unlock()

	return fn(&tx{store: s})
}

// Update runs fn with exclusive locks held. Every Put inside fn is written
// to disk before it returns.
func (s *Store) Update(ctx context.Context, fn func(tx board.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	return fn(&tx{store: s, writable: true})
}

// acquire takes the cross-process lock. Each call opens its own lock file
// handle so concurrent views in one process don't release each other.
func (s *Store) acquire(ctx context.Context, exclusive bool) (func(), error) {
	fl := flock.New(filepath.Join(s.dir, lockFile))

	var ok bool
	var err error
	if exclusive {
		ok, err = fl.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = fl.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: acquire lock: %v", repository.ErrStorage, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: lock %s not acquired", repository.ErrStorage, fl.Path())
	}
	return func() { _ = fl.Unlock() }, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readDocument decodes the named file into v. A missing or empty file leaves
// v untouched.
func (s *Store) readDocument(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", repository.ErrStorage, name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrCorrupt, name, err)
	}
	return nil
}

// writeDocument replaces the named file through a temp file and rename so a
// reader never sees a partial document.
func (s *Store) writeDocument(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", repository.ErrStorage, name, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", repository.ErrStorage, name, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %v", repository.ErrStorage, name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", repository.ErrStorage, name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", repository.ErrStorage, name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", repository.ErrStorage, name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return fmt.Errorf("%w: replace %s: %v", repository.ErrStorage, name, err)
	}
	return nil
}

type tx struct {
	store    *Store
	writable bool
}

func (t *tx) Projects(ctx context.Context) ([]board.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	projects := []board.Project{}
	if err := t.store.readDocument(ProjectsFile, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (t *tx) Downloads(ctx context.Context) ([]board.Download, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	downloads := []board.Download{}
	if err := t.store.readDocument(DownloadsFile, &downloads); err != nil {
		return nil, err
	}
	return downloads, nil
}

func (t *tx) PutProjects(ctx context.Context, projects []board.Project) error {
	if !t.writable {
		return repository.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if projects == nil {
		projects = []board.Project{}
	}
	return t.store.writeDocument(ProjectsFile, projects)
}

func (t *tx) PutDownloads(ctx context.Context, downloads []board.Download) error {
	if !t.writable {
		return repository.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if downloads == nil {
		downloads = []board.Download{}
	}
	return t.store.writeDocument(DownloadsFile, downloads)
}
