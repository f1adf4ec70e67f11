// Package app assembles stageboard from configuration: it opens the store,
// builds the board service, and serves it over HTTP or MCP stdio.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ganot/stageboard/internal/config"
	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/ganot/stageboard/internal/mcp"
	"github.com/ganot/stageboard/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const shutdownTimeout = 5 * time.Second

// App owns the store and the servers built on it.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	store    Store
	service  *board.Service
	sessions *transport.Sessions
	mcp      *sdkmcp.Server
}

// New opens the configured store and wires the service layers.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	service := board.NewService(store, logger)
	sessions := transport.NewSessions(cfg.Auth.Username, cfg.Auth.Password)
	mcpServer := mcp.NewServer(mcp.Config{
		Service:       service,
		Resolver:      sessions,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		service:  service,
		sessions: sessions,
		mcp:      mcpServer,
	}, nil
}

// Service returns the board service.
func (a *App) Service() *board.Service {
	return a.service
}

// Store returns the opened repository.
func (a *App) Store() Store {
	return a.store
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

// Handler returns the HTTP router with the MCP endpoint mounted at /mcp.
func (a *App) Handler() http.Handler {
	return transport.NewServer(a.service, transport.Options{
		Sessions:    a.sessions,
		RequireAuth: a.cfg.Auth.Enabled,
		CORSOrigins: a.cfg.CORS.AllowedOrigins,
		MCP:         mcp.NewHTTPHandler(a.mcp),
		Logger:      a.logger,
	})
}

// Run serves until ctx is canceled, using the configured transport.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Transport.Mode == config.TransportStdio {
		return a.runStdio(ctx)
	}
	return a.runHTTP(ctx)
}

func (a *App) runStdio(ctx context.Context) error {
	a.logger.Info("starting stdio transport", "auth", "disabled", "backend", a.cfg.Store.Backend)

	// Run blocks until stdin closes or context is canceled
	if err := a.mcp.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func (a *App) runHTTP(ctx context.Context) error {
	addr := net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			"addr", addr,
			"backend", a.cfg.Store.Backend,
			"auth", a.cfg.Auth.Enabled,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
