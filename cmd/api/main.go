package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"daynote-ai/internal/config"
	"daynote-ai/internal/http"
	"daynote-ai/internal/llm"
	"daynote-ai/internal/service"
	"daynote-ai/internal/storage"
	"daynote-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	noteRepo := storage.NewNoteRepo(db)
	reminderRepo := storage.NewReminderRepo(db)
	ledgerRepo := storage.NewLedgerRepo(db)

	// LLM client for the analysis pipeline
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	analysisService := service.NewAnalysisService(reminderRepo, ledgerRepo, llmClient)

	// Note search index: embeddings + Qdrant. Search degrades to disabled
	// when the collection cannot be reached at startup.
	ctx := context.Background()
	var searchService *service.SearchService
	var vectorStore vectorstore.VectorStore

	qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		slog.Warn("Note search disabled, Qdrant collection unavailable", "error", err)
	} else {
		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
		searchService = service.NewSearchService(embedder, qdrantStore, cfg.QdrantCollection)
		vectorStore = qdrantStore
		slog.Info("Note search enabled", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	}

	noteService := service.NewNoteService(noteRepo, analysisService, searchService)

	router := http.NewRouter(&http.Deps{
		NoteService:    noteService,
		SearchService:  searchService,
		Reminders:      reminderRepo,
		Ledger:         ledgerRepo,
		DB:             db,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
