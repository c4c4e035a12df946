package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks daynote-ai/internal/service Embedder

import (
	"context"
	"fmt"
	"log/slog"

	"daynote-ai/internal/storage"
	"daynote-ai/internal/vectorstore"
)

// Embedder turns texts into vectors for the search index.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// NoteHit is one semantic search result.
type NoteHit struct {
	NoteID  string
	ForDate string
	Score   float32
	Preview string
}

// SearchService maintains the note search index and answers semantic
// queries against it. One vector per note; the point id is the note's
// UUID so re-saving a note replaces its vector.
type SearchService struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
	logger     *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(embedder Embedder, store vectorstore.VectorStore, collection string) *SearchService {
	return &SearchService{
		embedder:   embedder,
		store:      store,
		collection: collection,
		logger:     slog.Default(),
	}
}

const previewLimit = 200

// IndexNote embeds the note text and upserts its vector.
func (s *SearchService) IndexNote(ctx context.Context, note *storage.Note) error {
	vecs, err := s.embedder.EmbedTexts(ctx, []string{note.Text})
	if err != nil {
		return WrapError(err, "failed to embed note")
	}

	point := vectorstore.Point{
		ID:  note.ID,
		Vec: vecs[0],
		Meta: map[string]any{
			"for_date": note.ForDate,
			"preview":  preview(note.Text),
		},
	}
	if err := s.store.Upsert(ctx, s.collection, []vectorstore.Point{point}); err != nil {
		return WrapError(err, "failed to index note")
	}
	return nil
}

// Search embeds the query and returns the k nearest notes.
func (s *SearchService) Search(ctx context.Context, query string, k int) ([]NoteHit, error) {
	if query == "" {
		return nil, &ValidationError{Field: "query", Message: "cannot be empty"}
	}
	if k <= 0 {
		k = 10
	}

	vecs, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	results, err := s.store.Search(ctx, s.collection, vecs[0], k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	hits := make([]NoteHit, 0, len(results))
	for _, result := range results {
		hit := NoteHit{
			NoteID: result.PointID,
			Score:  result.Score,
		}
		if forDate, ok := result.Meta["for_date"].(string); ok {
			hit.ForDate = forDate
		}
		if text, ok := result.Meta["preview"].(string); ok {
			hit.Preview = text
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// preview truncates note text for storage in point metadata.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
