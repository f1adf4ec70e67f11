package mocks

import (
	"context"

	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/stretchr/testify/mock"
)

// Repository is a mock for board.Repository. When the expectation returns a
// nil error the callback runs against Tx.
type Repository struct {
	mock.Mock
	Tx *Tx
}

func (m *Repository) View(ctx context.Context, fn func(tx board.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

func (m *Repository) Update(ctx context.Context, fn func(tx board.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

// Tx is a mock for board.Tx.
type Tx struct {
	mock.Mock
}

func (m *Tx) Projects(ctx context.Context) ([]board.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]board.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Tx) Downloads(ctx context.Context) ([]board.Download, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]board.Download); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Tx) PutProjects(ctx context.Context, projects []board.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

func (m *Tx) PutDownloads(ctx context.Context, downloads []board.Download) error {
	args := m.Called(ctx, downloads)
	return args.Error(0)
}
