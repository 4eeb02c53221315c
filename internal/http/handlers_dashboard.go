package http

import (
	"net/http"

	"cashbook/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filters := core.Filters{
		OnDate: core.ParseDate(q.Get("filter_date")),
		Kind:   core.TransactionKind(q.Get("filter_type")),
		Status: q.Get("filter_status"),
	}

	view, err := s.service.Dashboard(r.Context(), userID, filters)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, newDashboardView(view))
}
