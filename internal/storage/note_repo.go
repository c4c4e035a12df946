package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks daynote-ai/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// GetByDate gets the note for a calendar date (YYYY-MM-DD).
	// Returns nil and ErrNotFound if no note exists for that date.
	GetByDate(ctx context.Context, forDate string) (*Note, error)
	// Upsert inserts a new note or overwrites the text of an existing one.
	// At most one note exists per date; a write to an existing date never
	// creates a duplicate row.
	Upsert(ctx context.Context, note *Note) error
	// ListRecent returns up to limit notes, most recent date first.
	ListRecent(ctx context.Context, limit int) ([]Note, error)
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// GetByDate gets the note for a calendar date.
// Returns nil and ErrNotFound if not found.
func (r *NoteRepo) GetByDate(ctx context.Context, forDate string) (*Note, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, for_date, text, created_at, updated_at FROM notes WHERE for_date = ?",
		forDate,
	)
	return scanNote(row)
}

// Upsert inserts a new note or overwrites the text of an existing one.
// New notes get a generated UUID; the ID of an existing note is preserved.
func (r *NoteRepo) Upsert(ctx context.Context, note *Note) error {
	existing, err := r.GetByDate(ctx, note.ForDate)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing note: %w", err)
	}

	if existing != nil {
		note.ID = existing.ID
	} else if note.ID == "" {
		note.ID = uuid.New().String()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (id, for_date, text, created_at, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (for_date) DO UPDATE SET
		 text = excluded.text, updated_at = CURRENT_TIMESTAMP`,
		note.ID, note.ForDate, note.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	return nil
}

// ListRecent returns up to limit notes ordered by date descending.
func (r *NoteRepo) ListRecent(ctx context.Context, limit int) ([]Note, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, for_date, text, created_at, updated_at FROM notes ORDER BY for_date DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var notes []Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*Note, error) {
	var note Note
	var createdAtStr, updatedAtStr string

	err := row.Scan(&note.ID, &note.ForDate, &note.Text, &createdAtStr, &updatedAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	if note.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	if note.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, err
	}

	return &note, nil
}
