package transport

import (
	"net/http"

	"github.com/ganot/stageboard/internal/domain/board"
)

type createProjectRequest struct {
	ProjectName string `json:"projectName"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type reorderRequest struct {
	FromIndex *int `json:"fromIndex"`
	ToIndex   *int `json:"toIndex"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.ListProjects(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	project, err := s.svc.GetProject(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	project, err := s.svc.CreateProject(r.Context(), req.ProjectName)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	projects, err := s.svc.DeleteProject(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleAddStage(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req board.AddStageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	stage, err := s.svc.AddStage(r.Context(), projectID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stage)
}

func (s *Server) handleSetStageStatus(w http.ResponseWriter, r *http.Request) {
	projectID, stageID, err := stagePath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	status, err := board.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stage, err := s.svc.SetStageStatus(r.Context(), projectID, stageID, status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stage)
}

func (s *Server) handleCycleStage(w http.ResponseWriter, r *http.Request) {
	projectID, stageID, err := stagePath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stage, err := s.svc.CycleStageStatus(r.Context(), projectID, stageID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stage)
}

func (s *Server) handleReorderStage(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.FromIndex == nil || req.ToIndex == nil {
		s.writeError(w, r, invalidInput("fromIndex and toIndex are required"))
		return
	}
	stages, err := s.svc.ReorderStage(r.Context(), projectID, *req.FromIndex, *req.ToIndex)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stages)
}

func (s *Server) handleDeleteStage(w http.ResponseWriter, r *http.Request) {
	projectID, stageID, err := stagePath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stages, err := s.svc.DeleteStage(r.Context(), projectID, stageID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stages)
}

func stagePath(r *http.Request) (int, int, error) {
	projectID, err := pathID(r, "projectId")
	if err != nil {
		return 0, 0, err
	}
	stageID, err := pathID(r, "stageId")
	if err != nil {
		return 0, 0, err
	}
	return projectID, stageID, nil
}
