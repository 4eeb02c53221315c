package http

import (
	"errors"
	"net/http"

	"cashbook/internal/core"
)

type recordRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request, userID string) {
	kind := core.RecordKind(r.URL.Query().Get("kind"))
	if !core.ValidRecordKind(kind) {
		writeError(w, http.StatusBadRequest, "unknown record kind")
		return
	}

	switch r.Method {
	case http.MethodGet:
		recs, err := s.service.Records(r.Context(), userID, kind)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "List records failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, newRecordViews(recs))

	case http.MethodPost:
		var req recordRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rec, err := s.service.AddRecord(r.Context(), userID, kind, req.Name)
		if errors.Is(err, core.ErrEmptyName) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Add record failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, recordView{ID: rec.ID, Name: rec.Name, Group: rec.Group})

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
