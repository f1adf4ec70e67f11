package mcp

import (
	"context"

	"github.com/ganot/stageboard/internal/domain/board"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolHandlers struct {
	svc BoardService
}

func registerTools(server *sdkmcp.Server, svc BoardService) {
	h := &toolHandlers{svc: svc}

	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their stages",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project by id",
	}, h.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project. It starts with one incomplete stage per download",
	}, h.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and return the remaining projects",
	}, h.deleteProject)

	// Stages
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_stage",
		Description: "Append an ongoing stage to a project",
	}, h.addStage)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_stage_status",
		Description: "Set a stage status to ongoing, completed or incomplete",
	}, h.setStageStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cycle_stage_status",
		Description: "Advance a stage status: ongoing to completed to incomplete to ongoing",
	}, h.cycleStageStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_stage",
		Description: "Move a stage from one position to another within its project",
	}, h.reorderStage)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_stage",
		Description: "Remove a stage from a project",
	}, h.deleteStage)

	// Downloads
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_downloads",
		Description: "List the download catalog",
	}, h.listDownloads)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_download",
		Description: "Add a download and append a matching stage to every project",
	}, h.createDownload)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_download",
		Description: "Remove a download from the catalog. Project stages are kept",
	}, h.deleteDownload)
}

func (h *toolHandlers) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ProjectsResult, error) {
	projects, err := h.svc.ListProjects(ctx)
	if err != nil {
		return nil, ProjectsResult{}, MapError(err)
	}
	return nil, ProjectsResult{Projects: projects}, nil
}

func (h *toolHandlers) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectRefParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	project, err := h.svc.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, ProjectResult{}, MapError(err)
	}
	return nil, ProjectResult{Project: *project}, nil
}

func (h *toolHandlers) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	project, err := h.svc.CreateProject(ctx, in.ProjectName)
	if err != nil {
		return nil, ProjectResult{}, MapError(err)
	}
	return nil, ProjectResult{Project: *project}, nil
}

func (h *toolHandlers) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectRefParams) (*sdkmcp.CallToolResult, ProjectsResult, error) {
	projects, err := h.svc.DeleteProject(ctx, in.ProjectID)
	if err != nil {
		return nil, ProjectsResult{}, MapError(err)
	}
	return nil, ProjectsResult{Projects: projects}, nil
}

func (h *toolHandlers) addStage(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddStageParams) (*sdkmcp.CallToolResult, StageResult, error) {
	stage, err := h.svc.AddStage(ctx, in.ProjectID, board.AddStageRequest{Name: in.Name, FileURL: in.FileURL})
	if err != nil {
		return nil, StageResult{}, MapError(err)
	}
	return nil, StageResult{Stage: *stage}, nil
}

func (h *toolHandlers) setStageStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetStageStatusParams) (*sdkmcp.CallToolResult, StageResult, error) {
	status, err := board.ParseStatus(in.Status)
	if err != nil {
		return nil, StageResult{}, MapError(err)
	}
	stage, err := h.svc.SetStageStatus(ctx, in.ProjectID, in.StageID, status)
	if err != nil {
		return nil, StageResult{}, MapError(err)
	}
	return nil, StageResult{Stage: *stage}, nil
}

func (h *toolHandlers) cycleStageStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, in StageRefParams) (*sdkmcp.CallToolResult, StageResult, error) {
	stage, err := h.svc.CycleStageStatus(ctx, in.ProjectID, in.StageID)
	if err != nil {
		return nil, StageResult{}, MapError(err)
	}
	return nil, StageResult{Stage: *stage}, nil
}

func (h *toolHandlers) reorderStage(ctx context.Context, _ *sdkmcp.CallToolRequest, in ReorderStageParams) (*sdkmcp.CallToolResult, StagesResult, error) {
	stages, err := h.svc.ReorderStage(ctx, in.ProjectID, in.FromIndex, in.ToIndex)
	if err != nil {
		return nil, StagesResult{}, MapError(err)
	}
	return nil, StagesResult{Stages: stages}, nil
}

func (h *toolHandlers) deleteStage(ctx context.Context, _ *sdkmcp.CallToolRequest, in StageRefParams) (*sdkmcp.CallToolResult, StagesResult, error) {
	stages, err := h.svc.DeleteStage(ctx, in.ProjectID, in.StageID)
	if err != nil {
		return nil, StagesResult{}, MapError(err)
	}
	return nil, StagesResult{Stages: stages}, nil
}

func (h *toolHandlers) listDownloads(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, DownloadsResult, error) {
	downloads, err := h.svc.ListDownloads(ctx)
	if err != nil {
		return nil, DownloadsResult{}, MapError(err)
	}
	return nil, DownloadsResult{Downloads: downloads}, nil
}

func (h *toolHandlers) createDownload(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateDownloadParams) (*sdkmcp.CallToolResult, DownloadsResult, error) {
	downloads, err := h.svc.CreateDownload(ctx, board.CreateDownloadRequest{
		Name:        in.Name,
		Description: in.Description,
		FileURL:     in.FileURL,
	})
	if err != nil {
		return nil, DownloadsResult{}, MapError(err)
	}
	return nil, DownloadsResult{Downloads: downloads}, nil
}

func (h *toolHandlers) deleteDownload(ctx context.Context, _ *sdkmcp.CallToolRequest, in DownloadRefParams) (*sdkmcp.CallToolResult, DownloadsResult, error) {
	downloads, err := h.svc.DeleteDownload(ctx, in.ID)
	if err != nil {
		return nil, DownloadsResult{}, MapError(err)
	}
	return nil, DownloadsResult{Downloads: downloads}, nil
}
