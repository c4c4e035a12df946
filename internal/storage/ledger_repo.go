package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_ledger.go -package=mocks daynote-ai/internal/storage AnalysisLedger

import (
	"context"
	"database/sql"
	"fmt"
)

// AnalysisLedger defines the durable record of the analysis pipeline: a
// single mutable slot holding the text of the last note successfully
// analyzed, plus an append-only log of model interactions.
//
// The slot is deliberately not keyed by note: it reflects the last analysis
// attempt system-wide. Repeated edits to different notes with identical
// text are therefore treated as duplicates.
type AnalysisLedger interface {
	// LastProcessedText returns the text of the last note successfully
	// analyzed. Returns ErrNotFound before the first successful analysis.
	LastProcessedText(ctx context.Context) (string, error)
	// SetLastProcessedText overwrites the slot (insert on first write).
	SetLastProcessedText(ctx context.Context, text string) error
	// AppendInteraction appends one immutable log entry and sets its ID
	// and CreatedAt.
	AppendInteraction(ctx context.Context, entry *InteractionLogEntry) error
	// ListInteractions returns all log entries, newest first.
	ListInteractions(ctx context.Context) ([]InteractionLogEntry, error)
	// DeleteInteraction removes a single log entry.
	DeleteInteraction(ctx context.Context, id int64) error
	// ClearInteractions removes every log entry.
	ClearInteractions(ctx context.Context) error
}

// LedgerRepo provides methods for analysis ledger operations.
// It implements the AnalysisLedger interface.
type LedgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// LastProcessedText returns the contents of the duplicate-guard slot.
func (r *LedgerRepo) LastProcessedText(ctx context.Context) (string, error) {
	var text string
	err := r.db.QueryRowContext(ctx,
		"SELECT last_processed_text FROM analysis_state WHERE id = 1",
	).Scan(&text)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query analysis state: %w", err)
	}
	return text, nil
}

// SetLastProcessedText upserts the duplicate-guard slot. The table holds at
// most one row.
func (r *LedgerRepo) SetLastProcessedText(ctx context.Context, text string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO analysis_state (id, last_processed_text) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET last_processed_text = excluded.last_processed_text`,
		text,
	)
	if err != nil {
		return fmt.Errorf("failed to set last processed text: %w", err)
	}
	return nil
}

// AppendInteraction appends one log entry.
func (r *LedgerRepo) AppendInteraction(ctx context.Context, entry *InteractionLogEntry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ai_interaction_log (note_id, prompt, response, success, reasoning, reminders_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.NoteID, entry.Prompt, entry.Response, entry.Success, entry.Reasoning, entry.RemindersCount,
	)
	if err != nil {
		return fmt.Errorf("failed to append interaction log: %w", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get interaction log id: %w", err)
	}
	return nil
}

// ListInteractions returns all log entries, newest first.
func (r *LedgerRepo) ListInteractions(ctx context.Context) ([]InteractionLogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, note_id, prompt, response, success, reasoning, reminders_count, created_at
		 FROM ai_interaction_log ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction log: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []InteractionLogEntry
	for rows.Next() {
		var entry InteractionLogEntry
		var createdAtStr string

		err := rows.Scan(&entry.ID, &entry.NoteID, &entry.Prompt, &entry.Response,
			&entry.Success, &entry.Reasoning, &entry.RemindersCount, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction log entry: %w", err)
		}

		if entry.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interaction log: %w", err)
	}

	return entries, nil
}

// DeleteInteraction removes a single log entry.
func (r *LedgerRepo) DeleteInteraction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ai_interaction_log WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete interaction log entry: %w", err)
	}
	return requireRow(res)
}

// ClearInteractions removes every log entry.
func (r *LedgerRepo) ClearInteractions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM ai_interaction_log")
	if err != nil {
		return fmt.Errorf("failed to clear interaction log: %w", err)
	}
	return nil
}
