package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"daynote-ai/internal/storage"
)

// AnalysisLogHandler serves the audit trail of model interactions.
// Entries are immutable; consumers can only read, delete one, or clear all.
type AnalysisLogHandler struct {
	ledger storage.AnalysisLedger
}

// NewAnalysisLogHandler creates a new AnalysisLogHandler.
func NewAnalysisLogHandler(ledger storage.AnalysisLedger) *AnalysisLogHandler {
	return &AnalysisLogHandler{ledger: ledger}
}

// InteractionLogResponse is the wire form of one log entry.
type InteractionLogResponse struct {
	ID             int64  `json:"id"`
	NoteID         string `json:"note_id"`
	Prompt         string `json:"prompt"`
	Response       string `json:"response"`
	Success        bool   `json:"success"`
	Reasoning      string `json:"reasoning"`
	RemindersCount int    `json:"reminders_count"`
	CreatedAt      string `json:"created_at"`
}

// List returns all log entries, newest first.
// GET /api/analysis-log
func (h *AnalysisLogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledger.ListInteractions(r.Context())
	if err != nil {
		handleStorageError(w, r, err, "failed to list analysis log")
		return
	}

	resp := make([]InteractionLogResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, InteractionLogResponse{
			ID:             entry.ID,
			NoteID:         entry.NoteID,
			Prompt:         entry.Prompt,
			Response:       entry.Response,
			Success:        entry.Success,
			Reasoning:      entry.Reasoning,
			RemindersCount: entry.RemindersCount,
			CreatedAt:      entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes a single log entry.
// DELETE /api/analysis-log/{id}
func (h *AnalysisLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	if err := h.ledger.DeleteInteraction(r.Context(), id); err != nil {
		handleStorageError(w, r, err, "failed to delete analysis log entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear removes every log entry.
// DELETE /api/analysis-log
func (h *AnalysisLogHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.ClearInteractions(r.Context()); err != nil {
		handleStorageError(w, r, err, "failed to clear analysis log")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
