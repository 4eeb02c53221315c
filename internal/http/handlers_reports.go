package http

import "net/http"

func (s *Server) handleSimpleReport(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	report, err := s.service.SimpleReport(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Simple report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, newSimpleReportView(report))
}

func (s *Server) handleDetailedReport(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	report, err := s.service.DetailedReport(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Detailed report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, newDetailedReportView(report))
}
