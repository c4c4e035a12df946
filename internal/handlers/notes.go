package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"daynote-ai/internal/contextutil"
	"daynote-ai/internal/service"
	"daynote-ai/internal/storage"
)

// NotesHandler handles HTTP requests for daily notes.
type NotesHandler struct {
	notes    *service.NoteService
	markdown goldmark.Markdown
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notes *service.NoteService) *NotesHandler {
	return &NotesHandler{
		notes: notes,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.TaskList,
				extension.Strikethrough,
			),
		),
	}
}

// SaveNoteRequest is the request payload for saving a note.
type SaveNoteRequest struct {
	Text string `json:"text"`
}

// NoteResponse is the wire form of a note.
type NoteResponse struct {
	ID        string `json:"id"`
	ForDate   string `json:"for_date"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SaveNoteResponse is the response payload for saving a note. The note
// write and the analysis run can succeed or fail independently;
// AnalysisError is set when the note was saved but analysis failed.
type SaveNoteResponse struct {
	Note          NoteResponse `json:"note"`
	AnalysisError string       `json:"analysis_error,omitempty"`
}

// Save upserts the note for a date and runs analysis.
// PUT /api/notes/{date}
func (h *NotesHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	forDate := chi.URLParam(r, "date")

	var req SaveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notes.Save(ctx, forDate, req.Text)
	if err != nil && note == nil {
		handleServiceError(w, r, err, "failed to save note")
		return
	}

	resp := SaveNoteResponse{Note: toNoteResponse(note)}
	status := http.StatusOK
	if err != nil {
		// The note is durable; only the analysis run failed.
		logger.ErrorContext(ctx, "note saved but analysis failed", "note_id", note.ID, "error", err)
		resp.AnalysisError = err.Error()
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

// Get returns the note for a date.
// GET /api/notes/{date}
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		handleServiceError(w, r, err, "failed to load note")
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// List returns recent notes, most recent date first.
// GET /api/notes?limit=N
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	notes, err := h.notes.ListRecent(r.Context(), limit)
	if err != nil {
		handleServiceError(w, r, err, "failed to list notes")
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		resp = append(resp, toNoteResponse(&notes[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Render returns the note rendered as an HTML fragment.
// GET /api/notes/{date}/html
func (h *NotesHandler) Render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	note, err := h.notes.Get(ctx, chi.URLParam(r, "date"))
	if err != nil {
		handleServiceError(w, r, err, "failed to load note")
		return
	}

	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(note.Text), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render note", "note_id", note.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render note")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, buf.String())
}

func toNoteResponse(note *storage.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		ForDate:   note.ForDate,
		Text:      note.Text,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
