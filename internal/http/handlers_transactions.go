package http

import (
	"errors"
	"net/http"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

type transactionRequest struct {
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	Kind         string `json:"kind"`
	Category     string `json:"category"`
	DueDate      string `json:"due_date"`
	PaymentDate  string `json:"payment_date"`
	Counterparty string `json:"counterparty"`
	Settled      bool   `json:"settled"`
}

func (req transactionRequest) input() ledger.TransactionInput {
	return ledger.TransactionInput{
		Description:  req.Description,
		Amount:       req.Amount,
		Kind:         req.Kind,
		Category:     req.Category,
		DueDate:      req.DueDate,
		PaymentDate:  req.PaymentDate,
		Counterparty: req.Counterparty,
		Settled:      req.Settled,
	}
}

// writeMutationError maps domain errors to user-facing statuses. Only
// unexpected failures become 500s.
func (s *Server) writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrMissingDueDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "Transaction mutation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := s.service.Add(r.Context(), userID, req.input())
	if err != nil {
		s.writeMutationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTransactionView(t))
}

type editRequest struct {
	ID string `json:"id"`
	transactionRequest
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req editRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := s.service.Edit(r.Context(), userID, req.ID, req.input())
	if err != nil {
		s.writeMutationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTransactionView(t))
}

type idRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleSettleTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req idRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := s.service.Settle(r.Context(), userID, req.ID)
	if err != nil {
		s.writeMutationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTransactionView(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req idRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.service.Delete(r.Context(), userID, req.ID); err != nil {
		s.writeMutationError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
