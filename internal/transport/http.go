package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// BoardService is the domain surface the HTTP handlers drive.
type BoardService interface {
	ListProjects(ctx context.Context) ([]board.Project, error)
	GetProject(ctx context.Context, id int) (*board.Project, error)
	CreateProject(ctx context.Context, name string) (*board.Project, error)
	DeleteProject(ctx context.Context, id int) ([]board.Project, error)
	AddStage(ctx context.Context, projectID int, req board.AddStageRequest) (*board.Stage, error)
	SetStageStatus(ctx context.Context, projectID, stageID int, status board.Status) (*board.Stage, error)
	CycleStageStatus(ctx context.Context, projectID, stageID int) (*board.Stage, error)
	ReorderStage(ctx context.Context, projectID, from, to int) ([]board.Stage, error)
	DeleteStage(ctx context.Context, projectID, stageID int) ([]board.Stage, error)
	ListDownloads(ctx context.Context) ([]board.Download, error)
	CreateDownload(ctx context.Context, req board.CreateDownloadRequest) ([]board.Download, error)
	DeleteDownload(ctx context.Context, id int) ([]board.Download, error)
}

// Options configures the router.
type Options struct {
	// Sessions enables admin login. Nil disables /login and /logout.
	Sessions *Sessions
	// RequireAuth guards mutating routes with a bearer token.
	RequireAuth bool
	CORSOrigins []string
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	svc      BoardService
	sessions *Sessions
	logger   *slog.Logger
}

const welcomeMessage = "Welcome to the admin API!"

// NewServer creates an HTTP server router with middleware.
func NewServer(svc BoardService, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(opts.CORSOrigins))

	srv := &Server{svc: svc, sessions: opts.Sessions, logger: logger}

	guard := func(next http.Handler) http.Handler { return next }
	if opts.RequireAuth && opts.Sessions != nil {
		guard = AuthMiddleware(opts.Sessions)
	}

	r.Get("/", srv.handleWelcome)
	r.Get("/health", srv.handleHealth)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", srv.handleListProjects)
		r.Get("/{projectId}", srv.handleGetProject)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", srv.handleCreateProject)
			r.Delete("/{projectId}", srv.handleDeleteProject)

			r.Route("/stage/{projectId}", func(r chi.Router) {
				r.Post("/", srv.handleAddStage)
				r.Put("/reorder", srv.handleReorderStage)
				r.Put("/{stageId}", srv.handleSetStageStatus)
				r.Post("/{stageId}/cycle", srv.handleCycleStage)
				r.Delete("/{stageId}", srv.handleDeleteStage)
			})
		})
	})

	r.Route("/downloads", func(r chi.Router) {
		r.Get("/", srv.handleListDownloads)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/", srv.handleCreateDownload)
			r.Delete("/{downloadId}", srv.handleDeleteDownload)
		})
	})

	if opts.Sessions != nil {
		r.Post("/login", srv.handleLogin)
		r.Post("/logout", srv.handleLogout)
	}

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomeMessage))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
