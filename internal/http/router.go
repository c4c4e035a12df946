package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"daynote-ai/internal/handlers"
	"daynote-ai/internal/service"
	"daynote-ai/internal/storage"
	"daynote-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	NoteService    *service.NoteService
	SearchService  *service.SearchService // nil disables /api/search
	Reminders      storage.ReminderStore
	Ledger         storage.AnalysisLedger
	DB             *sql.DB
	VectorStore    vectorstore.VectorStore // nil skips the search health check
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	notesHandler := handlers.NewNotesHandler(deps.NoteService)
	remindersHandler := handlers.NewRemindersHandler(deps.Reminders)
	logHandler := handlers.NewAnalysisLogHandler(deps.Ledger)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Get("/notes", notesHandler.List)
		r.Put("/notes/{date}", notesHandler.Save)
		r.Get("/notes/{date}", notesHandler.Get)
		r.Get("/notes/{date}/html", notesHandler.Render)

		r.Get("/reminders", remindersHandler.List)
		r.Post("/reminders/{id}/resolve", remindersHandler.Resolve)
		r.Post("/reminders/{id}/unresolve", remindersHandler.Unresolve)
		r.Delete("/reminders/{id}", remindersHandler.Delete)

		r.Get("/analysis-log", logHandler.List)
		r.Delete("/analysis-log/{id}", logHandler.Delete)
		r.Delete("/analysis-log", logHandler.Clear)

		if deps.SearchService != nil {
			searchHandler := handlers.NewSearchHandler(deps.SearchService)
			r.Post("/search", searchHandler.Search)
		}

		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
