package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analyzer.go -package=mocks daynote-ai/internal/service Analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"daynote-ai/internal/analysis"
	"daynote-ai/internal/contextutil"
	"daynote-ai/internal/storage"
)

// Analyzer is the sole outbound contract to the LLM provider: the whole
// prompt goes out as a single message, the model's raw text comes back.
// This interface is defined from the service layer's perspective
// (consumer-first).
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// AnalysisService runs the note-analysis and reminder-reconciliation
// pipeline. Each run: acquire the analysis lock, skip if the note text is
// unchanged since the last successful run, build the prompt, call the
// model exactly once, parse the reply, apply create/update decisions to
// the reminder set, log the attempt, and record the analyzed text.
//
// It is the sole writer of model-derived reminders and of the analysis
// ledger.
type AnalysisService struct {
	reminders storage.ReminderStore
	ledger    storage.AnalysisLedger
	analyzer  Analyzer
	lock      *semaphore.Weighted
	now       func() time.Time
	logger    *slog.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(reminders storage.ReminderStore, ledger storage.AnalysisLedger, analyzer Analyzer) *AnalysisService {
	return &AnalysisService{
		reminders: reminders,
		ledger:    ledger,
		analyzer:  analyzer,
		lock:      semaphore.NewWeighted(1),
		now:       time.Now,
		logger:    slog.Default(),
	}
}

// AnalyzeNote runs the pipeline for one note. Concurrent calls are
// serialized process-wide: the lock is held for the entire run, including
// the external call, so a second rapid save cannot observe a stale
// reminder set and duplicate a CREATE. A waiting caller does not coalesce
// with the running one; it proceeds afterwards with its own text.
//
// Known limitation: there is no timeout on the external call, so a hanging
// provider holds the lock until the call returns. Once the external call
// has started the run cannot be cancelled.
func (s *AnalysisService) AnalyzeNote(ctx context.Context, note *storage.Note) error {
	logger := contextutil.LoggerFromContext(ctx)

	// Waiting for the lock is not an error; Acquire only fails if the
	// caller gives up before entering the critical section.
	if err := s.lock.Acquire(ctx, 1); err != nil {
		return WrapError(err, "failed to acquire analysis lock")
	}
	defer s.lock.Release(1)

	// Duplicate check: identical text to the last successful run means
	// nothing to do. No model call, no log entry.
	lastText, err := s.ledger.LastProcessedText(ctx)
	if err != nil && err != storage.ErrNotFound {
		return WrapError(err, "failed to read analysis ledger")
	}
	if err == nil && lastText == note.Text {
		logger.DebugContext(ctx, "note text unchanged since last analysis, skipping", "note_id", note.ID)
		return nil
	}

	existing, err := s.reminders.List(ctx)
	if err != nil {
		return WrapError(err, "failed to list reminders")
	}

	prompt := analysis.BuildPrompt(note.Text, s.now().Format(analysis.DateDisplayFormat), existing)

	raw, err := s.analyzer.Analyze(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "model call failed", "note_id", note.ID, "error", err)
		failure := fmt.Sprintf("analysis request failed: %v", err)
		if logErr := s.logAttempt(ctx, note.ID, prompt, failure, false, "", 0); logErr != nil {
			return logErr
		}
		return fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	extraction, err := analysis.ParseResponse(raw)
	if err != nil {
		logger.ErrorContext(ctx, "model response rejected", "note_id", note.ID, "error", err)
		failure := fmt.Sprintf("failed to parse model response: %v\nraw response: %s", err, raw)
		if logErr := s.logAttempt(ctx, note.ID, prompt, failure, false, "", 0); logErr != nil {
			return logErr
		}
		return fmt.Errorf("%w: %v", ErrModelResponse, err)
	}

	changes := make([]storage.ReminderChange, 0, len(extraction.Reminders))
	for _, item := range extraction.Reminders {
		changes = append(changes, storage.ReminderChange{
			Action:   item.Action,
			UpdateID: item.UpdateID,
			Text:     item.Text,
			Tags:     item.Tags,
		})
	}

	// The model is trusted to supply valid update ids; an absent id is a
	// storage error and fails the whole batch without applying any of it.
	if err := s.reminders.Apply(ctx, note.ID, changes); err != nil {
		logger.ErrorContext(ctx, "failed to apply reminder changes", "note_id", note.ID, "error", err)
		failure := fmt.Sprintf("failed to apply reminder changes: %v\nmodel response: %s", err, raw)
		if logErr := s.logAttempt(ctx, note.ID, prompt, failure, false, "", 0); logErr != nil {
			return logErr
		}
		return WrapError(err, "failed to apply reminder changes")
	}

	// Log after the reminder writes are durable but before the ledger slot
	// moves, so a crash in between re-analyzes the same text later instead
	// of wrongly skipping it.
	if err := s.logAttempt(ctx, note.ID, prompt, raw, true, extraction.Reasoning, len(extraction.Reminders)); err != nil {
		return err
	}
	if err := s.ledger.SetLastProcessedText(ctx, note.Text); err != nil {
		return WrapError(err, "failed to update analysis ledger")
	}

	logger.InfoContext(ctx, "note analyzed", "note_id", note.ID, "extracted", len(extraction.Reminders))
	return nil
}

// logAttempt appends one interaction log entry. A failure to log is
// unrecoverable for the invocation and propagates to the caller.
func (s *AnalysisService) logAttempt(ctx context.Context, noteID, prompt, response string, success bool, reasoning string, count int) error {
	entry := &storage.InteractionLogEntry{
		NoteID:         noteID,
		Prompt:         prompt,
		Response:       response,
		Success:        success,
		Reasoning:      reasoning,
		RemindersCount: count,
	}
	if err := s.ledger.AppendInteraction(ctx, entry); err != nil {
		return WrapError(err, "failed to append interaction log")
	}
	return nil
}
