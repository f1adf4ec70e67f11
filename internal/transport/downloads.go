package transport

import (
	"net/http"

	"github.com/ganot/stageboard/internal/domain/board"
)

func (s *Server) handleListDownloads(w http.ResponseWriter, r *http.Request) {
	downloads, err := s.svc.ListDownloads(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, downloads)
}

func (s *Server) handleCreateDownload(w http.ResponseWriter, r *http.Request) {
	var req board.CreateDownloadRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	downloads, err := s.svc.CreateDownload(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, downloads)
}

func (s *Server) handleDeleteDownload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "downloadId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	downloads, err := s.svc.DeleteDownload(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, downloads)
}
