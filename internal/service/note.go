package service

import (
	"context"
	"log/slog"
	"time"

	"daynote-ai/internal/contextutil"
	"daynote-ai/internal/storage"
)

// NoteService handles saving and reading daily notes. A save upserts the
// note, runs the analysis pipeline, and refreshes the search index.
type NoteService struct {
	notes    storage.NoteStore
	analysis *AnalysisService
	search   *SearchService // nil when search is disabled
	logger   *slog.Logger
}

// NewNoteService creates a new NoteService. search may be nil.
func NewNoteService(notes storage.NoteStore, analysis *AnalysisService, search *SearchService) *NoteService {
	return &NoteService{
		notes:    notes,
		analysis: analysis,
		search:   search,
		logger:   slog.Default(),
	}
}

// Save upserts the note for a calendar date and triggers analysis. The
// note write is durable even when analysis fails; the returned note is
// non-nil whenever the write succeeded, alongside any analysis error.
func (s *NoteService) Save(ctx context.Context, forDate, text string) (*storage.Note, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := time.Parse("2006-01-02", forDate); err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be a calendar date in YYYY-MM-DD form"}
	}
	if text == "" {
		return nil, &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	note := &storage.Note{ForDate: forDate, Text: text}
	if err := s.notes.Upsert(ctx, note); err != nil {
		return nil, WrapError(err, "failed to save note")
	}

	// Search indexing is best-effort: a stale index is acceptable, a
	// failed save is not.
	if s.search != nil {
		if err := s.search.IndexNote(ctx, note); err != nil {
			logger.WarnContext(ctx, "failed to index note for search", "note_id", note.ID, "error", err)
		}
	}

	if err := s.analysis.AnalyzeNote(ctx, note); err != nil {
		return note, err
	}

	return note, nil
}

// Get returns the note for a calendar date.
func (s *NoteService) Get(ctx context.Context, forDate string) (*storage.Note, error) {
	note, err := s.notes.GetByDate(ctx, forDate)
	if err == storage.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, WrapError(err, "failed to load note")
	}
	return note, nil
}

// ListRecent returns up to limit notes, most recent date first.
func (s *NoteService) ListRecent(ctx context.Context, limit int) ([]storage.Note, error) {
	notes, err := s.notes.ListRecent(ctx, limit)
	if err != nil {
		return nil, WrapError(err, "failed to list notes")
	}
	return notes, nil
}
