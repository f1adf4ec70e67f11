package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ganot/stageboard/internal/config"
	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/ganot/stageboard/internal/jsonfile"
	"github.com/ganot/stageboard/internal/sqlite"
)

// Store is a board repository that owns resources.
type Store interface {
	board.Repository
	io.Closer
}

// OpenStore opens the configured backend.
func OpenStore(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendJSONFile:
		store, err := jsonfile.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendSQLite:
		if err := ensureDBDir(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlite.NewDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
