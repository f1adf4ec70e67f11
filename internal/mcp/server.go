package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ganot/stageboard/internal/domain/board"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// BoardService defines board operations needed by MCP.
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

// Config contains server configuration.
type Config struct {
	Service       BoardService
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

const serverInstructions = `Stageboard tracks projects and their stages.
Each project has an ordered list of stages with a status of ongoing, completed or incomplete.
Creating a download adds a matching stage to every existing project, and new projects start with one stage per download.
Use list_projects first to discover project and stage ids.`

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "stageboard",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio is local only and never authenticates.
	if cfg.AuthEnabled && cfg.TransportMode != "stdio" && cfg.Resolver != nil {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Service)

	return server
}

// NewHTTPHandler serves the MCP server over streamable HTTP.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)
}
