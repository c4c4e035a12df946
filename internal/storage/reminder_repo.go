package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reminder_store.go -package=mocks daynote-ai/internal/storage ReminderStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ReminderStore defines the interface for reminder storage operations.
// Inserts and text/tag updates originate exclusively from the analysis
// pipeline; resolve, unresolve and delete are direct user actions.
type ReminderStore interface {
	// List returns all reminders ordered by creation id.
	List(ctx context.Context) ([]Reminder, error)
	// Insert creates a new unresolved reminder bound to the originating note.
	Insert(ctx context.Context, noteID, text string, tags *string) (int64, error)
	// UpdateTextTags overwrites the text and tags of an existing reminder.
	// Returns ErrNotFound if no reminder has the given id.
	UpdateTextTags(ctx context.Context, id int64, text string, tags *string) error
	// Apply applies a batch of model decisions in a single transaction.
	// If any change fails, none are applied.
	Apply(ctx context.Context, noteID string, changes []ReminderChange) error
	// Resolve marks a reminder resolved and stamps resolved_at.
	Resolve(ctx context.Context, id int64) error
	// Unresolve clears the resolved flag and resolved_at.
	Unresolve(ctx context.Context, id int64) error
	// Delete removes a reminder.
	Delete(ctx context.Context, id int64) error
}

// ReminderRepo provides methods for reminder operations.
// It implements the ReminderStore interface.
type ReminderRepo struct {
	db *sql.DB
}

// NewReminderRepo creates a new ReminderRepo.
func NewReminderRepo(db *sql.DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

// List returns all reminders ordered by creation id.
func (r *ReminderRepo) List(ctx context.Context) ([]Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, resolved, resolved_at, created_from_note_id, tags, created_at
		 FROM reminders ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var reminders []Reminder
	for rows.Next() {
		var rem Reminder
		var resolvedAtStr sql.NullString
		var createdAtStr string

		err := rows.Scan(&rem.ID, &rem.Text, &rem.Resolved, &resolvedAtStr,
			&rem.CreatedFromNoteID, &rem.Tags, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		if resolvedAtStr.Valid {
			ts, err := parseTimestamp(resolvedAtStr.String)
			if err != nil {
				return nil, err
			}
			rem.ResolvedAt = &ts
		}
		if rem.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
			return nil, err
		}

		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}

// Insert creates a new unresolved reminder and returns its id.
func (r *ReminderRepo) Insert(ctx context.Context, noteID, text string, tags *string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reminders (text, created_from_note_id, tags) VALUES (?, ?, ?)",
		text, noteID, tags,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reminder: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get reminder id: %w", err)
	}
	return id, nil
}

// UpdateTextTags overwrites the text and tags of an existing reminder.
func (r *ReminderRepo) UpdateTextTags(ctx context.Context, id int64, text string, tags *string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reminders SET text = ?, tags = ? WHERE id = ?",
		text, tags, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return requireRow(res)
}

// Apply applies a batch of model decisions atomically. A CREATE inserts a
// new reminder bound to noteID; an UPDATE overwrites text/tags of the
// reminder identified by UpdateID and fails the whole batch if that id is
// absent.
func (r *ReminderRepo) Apply(ctx context.Context, noteID string, changes []ReminderChange) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, change := range changes {
		switch change.Action {
		case ActionCreate:
			_, err = tx.ExecContext(ctx,
				"INSERT INTO reminders (text, created_from_note_id, tags) VALUES (?, ?, ?)",
				change.Text, noteID, change.Tags,
			)
			if err != nil {
				return fmt.Errorf("failed to insert reminder: %w", err)
			}
		case ActionUpdate:
			res, err := tx.ExecContext(ctx,
				"UPDATE reminders SET text = ?, tags = ? WHERE id = ?",
				change.Text, change.Tags, change.UpdateID,
			)
			if err != nil {
				return fmt.Errorf("failed to update reminder %d: %w", change.UpdateID, err)
			}
			if err := requireRow(res); err != nil {
				return fmt.Errorf("failed to update reminder %d: %w", change.UpdateID, err)
			}
		default:
			return fmt.Errorf("unknown reminder action %q", change.Action)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reminder changes: %w", err)
	}
	return nil
}

// Resolve marks a reminder resolved and stamps resolved_at.
func (r *ReminderRepo) Resolve(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reminders SET resolved = 1, resolved_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve reminder: %w", err)
	}
	return requireRow(res)
}

// Unresolve clears the resolved flag and resolved_at together, preserving
// the invariant that resolved_at is set exactly when resolved is true.
func (r *ReminderRepo) Unresolve(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reminders SET resolved = 0, resolved_at = NULL WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to unresolve reminder: %w", err)
	}
	return requireRow(res)
}

// Delete removes a reminder.
func (r *ReminderRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return requireRow(res)
}

// requireRow converts a zero-row result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
