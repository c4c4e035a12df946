package storage

import "time"

// Note is a single free-text daily note. There is at most one note per
// calendar date; saving an existing date overwrites its text in place.
type Note struct {
	ID        string // UUID
	ForDate   string // Calendar date in YYYY-MM-DD form, unique
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reminder is an actionable item extracted from a note by the analysis
// pipeline. ResolvedAt is non-nil exactly when Resolved is true.
type Reminder struct {
	ID                int64
	Text              string
	Resolved          bool
	ResolvedAt        *time.Time
	CreatedFromNoteID string  // Note.ID of the originating note, never changed
	Tags              *string // Comma-separated labels, nil when untagged
	CreatedAt         time.Time
}

// InteractionLogEntry is one immutable record of an analysis attempt that
// reached the external model. Reasoning is empty and RemindersCount is zero
// on failed attempts.
type InteractionLogEntry struct {
	ID             int64
	NoteID         string
	Prompt         string
	Response       string
	Success        bool
	Reasoning      string
	RemindersCount int
	CreatedAt      time.Time
}

// Reminder change actions as emitted by the model.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
)

// ReminderChange is one model decision to apply against the reminder set.
// UpdateID is only meaningful when Action is ActionUpdate.
type ReminderChange struct {
	Action   string
	UpdateID int64
	Text     string
	Tags     *string
}
