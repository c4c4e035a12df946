package storage

import (
	"database/sql"
	"testing"
)

// newTestDB opens a migrated database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent-dir/definitely/not/here.db")
	if err == nil {
		t.Error("New() expected error for invalid path")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Running migrations again must not fail
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, table := range []string{"notes", "reminders", "analysis_state", "ai_interaction_log"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after Migrate(): %v", table, err)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "sqlite format", value: "2026-08-29 10:30:00"},
		{name: "rfc3339", value: "2026-08-29T10:30:00Z"},
		{name: "garbage", value: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := parseTimestamp(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("parseTimestamp() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimestamp() error = %v", err)
			}
			if ts.IsZero() {
				t.Error("parseTimestamp() returned zero time")
			}
		})
	}
}
