package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"daynote-ai/internal/service"
	"daynote-ai/internal/service/mocks"
	"daynote-ai/internal/vectorstore"
	vsmocks "daynote-ai/internal/vectorstore/mocks"
)

func newSearchHandler(t *testing.T) (*SearchHandler, *mocks.MockEmbedder, *vsmocks.MockVectorStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	embedder := mocks.NewMockEmbedder(ctrl)
	store := vsmocks.NewMockVectorStore(ctrl)
	return NewSearchHandler(service.NewSearchService(embedder, store, "daynotes")), embedder, store
}

func TestSearchHandler_Search(t *testing.T) {
	handler, embedder, store := newSearchHandler(t)

	embedder.EXPECT().
		EmbedTexts(gomock.Any(), []string{"offsite plans"}).
		Return([][]float32{{0.1}}, nil)
	store.EXPECT().
		Search(gomock.Any(), "daynotes", gomock.Any(), 3).
		Return([]vectorstore.SearchResult{
			{
				PointID: "note-1",
				Score:   0.9,
				Meta:    map[string]any{"for_date": "2026-03-01", "preview": "offsite agenda"},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"offsite plans","limit":3}`))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, body = %s", w.Code, w.Body.String())
	}
	var hits []SearchHit
	if err := json.Unmarshal(w.Body.Bytes(), &hits); err != nil {
		t.Fatalf("failed to decode hits: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].NoteID != "note-1" || hits[0].ForDate != "2026-03-01" || hits[0].Preview != "offsite agenda" {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
}

func TestSearchHandler_InvalidBody(t *testing.T) {
	handler, _, _ := newSearchHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want %v", w.Code, http.StatusBadRequest)
	}
}

func TestSearchHandler_EmptyQuery(t *testing.T) {
	handler, _, _ := newSearchHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":""}`))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want %v", w.Code, http.StatusBadRequest)
	}
}
