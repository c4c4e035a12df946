package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"daynote-ai/internal/storage"
)

// RemindersHandler handles HTTP requests for reminders. Creation and text
// changes happen only through the analysis pipeline; the operations here
// are the user-facing ones.
type RemindersHandler struct {
	reminders storage.ReminderStore
}

// NewRemindersHandler creates a new RemindersHandler.
func NewRemindersHandler(reminders storage.ReminderStore) *RemindersHandler {
	return &RemindersHandler{reminders: reminders}
}

// ReminderResponse is the wire form of a reminder.
type ReminderResponse struct {
	ID                int64   `json:"id"`
	Text              string  `json:"text"`
	Resolved          bool    `json:"resolved"`
	ResolvedAt        *string `json:"resolved_at"`
	CreatedFromNoteID string  `json:"created_from_note_id"`
	Tags              *string `json:"tags"`
	CreatedAt         string  `json:"created_at"`
}

// List returns all reminders ordered by creation id.
// GET /api/reminders
func (h *RemindersHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(r.Context())
	if err != nil {
		handleStorageError(w, r, err, "failed to list reminders")
		return
	}

	resp := make([]ReminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		resp = append(resp, toReminderResponse(rem))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Resolve marks a reminder resolved.
// POST /api/reminders/{id}/resolve
func (h *RemindersHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := reminderID(w, r)
	if !ok {
		return
	}
	if err := h.reminders.Resolve(r.Context(), id); err != nil {
		handleStorageError(w, r, err, "failed to resolve reminder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unresolve clears a reminder's resolved state.
// POST /api/reminders/{id}/unresolve
func (h *RemindersHandler) Unresolve(w http.ResponseWriter, r *http.Request) {
	id, ok := reminderID(w, r)
	if !ok {
		return
	}
	if err := h.reminders.Unresolve(r.Context(), id); err != nil {
		handleStorageError(w, r, err, "failed to unresolve reminder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a reminder.
// DELETE /api/reminders/{id}
func (h *RemindersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := reminderID(w, r)
	if !ok {
		return
	}
	if err := h.reminders.Delete(r.Context(), id); err != nil {
		handleStorageError(w, r, err, "failed to delete reminder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reminderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

func handleStorageError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	handleServiceError(w, r, err, defaultMsg)
}

func toReminderResponse(rem storage.Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:                rem.ID,
		Text:              rem.Text,
		Resolved:          rem.Resolved,
		CreatedFromNoteID: rem.CreatedFromNoteID,
		Tags:              rem.Tags,
		CreatedAt:         rem.CreatedAt.UTC().Format(time.RFC3339),
	}
	if rem.ResolvedAt != nil {
		ts := rem.ResolvedAt.UTC().Format(time.RFC3339)
		resp.ResolvedAt = &ts
	}
	return resp
}
