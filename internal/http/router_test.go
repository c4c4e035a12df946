package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"daynote-ai/internal/handlers"
	"daynote-ai/internal/service"
	"daynote-ai/internal/service/mocks"
	"daynote-ai/internal/storage"
)

type routerFixture struct {
	router   http.Handler
	analyzer *mocks.MockAnalyzer
	db       *sql.DB
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockAnalyzer(ctrl)

	noteRepo := storage.NewNoteRepo(db)
	reminderRepo := storage.NewReminderRepo(db)
	ledgerRepo := storage.NewLedgerRepo(db)
	analysisService := service.NewAnalysisService(reminderRepo, ledgerRepo, analyzer)
	noteService := service.NewNoteService(noteRepo, analysisService, nil)

	router := NewRouter(&Deps{
		NoteService: noteService,
		Reminders:   reminderRepo,
		Ledger:      ledgerRepo,
		DB:          db,
	})

	return &routerFixture{router: router, analyzer: analyzer, db: db}
}

func (f *routerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	f := newRouterFixture(t)
	if f.router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "list notes on empty DB",
			method:     http.MethodGet,
			path:       "/api/notes",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing note",
			method:     http.MethodGet,
			path:       "/api/notes/2026-01-01",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "save with malformed date",
			method:     http.MethodPut,
			path:       "/api/notes/not-a-date",
			body:       `{"text":"hello"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "save with invalid body",
			method:     http.MethodPut,
			path:       "/api/notes/2026-01-01",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "list reminders",
			method:     http.MethodGet,
			path:       "/api/reminders",
			wantStatus: http.StatusOK,
		},
		{
			name:       "resolve with non-numeric id",
			method:     http.MethodPost,
			path:       "/api/reminders/abc/resolve",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "resolve absent reminder",
			method:     http.MethodPost,
			path:       "/api/reminders/999/resolve",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "list analysis log",
			method:     http.MethodGet,
			path:       "/api/analysis-log",
			wantStatus: http.StatusOK,
		},
		{
			name:       "clear analysis log",
			method:     http.MethodDelete,
			path:       "/api/analysis-log",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "search disabled when not configured",
			method:     http.MethodPost,
			path:       "/api/search",
			body:       `{"query":"anything"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong method on notes",
			method:     http.MethodPost,
			path:       "/api/notes/2026-01-01",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_SaveAnalyzeFlow(t *testing.T) {
	f := newRouterFixture(t)

	f.analyzer.EXPECT().
		Analyze(gomock.Any(), gomock.Any()).
		Return(`{"reminders":[{"text":"Buy milk","action":"CREATE","update_id":null,"tags":"errand"}],"reasoning":"one task"}`, nil)

	// Save the note; analysis runs inline
	w := f.do(http.MethodPut, "/api/notes/2026-03-01", `{"text":"# Plans\n\nbuy milk tomorrow"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %v, body = %s", w.Code, w.Body.String())
	}
	var saveResp handlers.SaveNoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &saveResp); err != nil {
		t.Fatalf("failed to decode save response: %v", err)
	}
	if saveResp.AnalysisError != "" {
		t.Errorf("AnalysisError = %q, want empty", saveResp.AnalysisError)
	}
	if saveResp.Note.ForDate != "2026-03-01" {
		t.Errorf("ForDate = %q, want 2026-03-01", saveResp.Note.ForDate)
	}

	// The extracted reminder is visible
	w = f.do(http.MethodGet, "/api/reminders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list reminders status = %v", w.Code)
	}
	var reminders []handlers.ReminderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &reminders); err != nil {
		t.Fatalf("failed to decode reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("len(reminders) = %d, want 1", len(reminders))
	}
	if reminders[0].Text != "Buy milk" || reminders[0].Resolved {
		t.Errorf("unexpected reminder: %+v", reminders[0])
	}
	if reminders[0].Tags == nil || *reminders[0].Tags != "errand" {
		t.Errorf("Tags = %v, want errand", reminders[0].Tags)
	}

	// Resolve it
	w = f.do(http.MethodPost, "/api/reminders/1/resolve", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("resolve status = %v, want %v", w.Code, http.StatusNoContent)
	}

	// The note renders as HTML
	w = f.do(http.MethodGet, "/api/notes/2026-03-01/html", "")
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %v", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<h1>Plans</h1>") {
		t.Errorf("rendered HTML missing heading: %s", w.Body.String())
	}

	// The interaction is on the audit trail
	w = f.do(http.MethodGet, "/api/analysis-log", "")
	var entries []handlers.InteractionLogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode log entries: %v", err)
	}
	if len(entries) != 1 || !entries[0].Success || entries[0].RemindersCount != 1 {
		t.Errorf("unexpected log entries: %+v", entries)
	}
}

func TestRouter_SaveWithAnalysisFailure(t *testing.T) {
	f := newRouterFixture(t)

	f.analyzer.EXPECT().
		Analyze(gomock.Any(), gomock.Any()).
		Return("", errors.New("model unreachable"))

	w := f.do(http.MethodPut, "/api/notes/2026-03-01", `{"text":"buy milk"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("save status = %v, want %v", w.Code, http.StatusBadGateway)
	}
	var saveResp handlers.SaveNoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &saveResp); err != nil {
		t.Fatalf("failed to decode save response: %v", err)
	}
	if saveResp.AnalysisError == "" {
		t.Error("AnalysisError should be set when analysis fails")
	}

	// The note write survived
	w = f.do(http.MethodGet, "/api/notes/2026-03-01", "")
	if w.Code != http.StatusOK {
		t.Errorf("get status = %v, want %v (note is durable)", w.Code, http.StatusOK)
	}
}
