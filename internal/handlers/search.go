package handlers

import (
	"encoding/json"
	"net/http"

	"daynote-ai/internal/contextutil"
	"daynote-ai/internal/service"
)

// SearchHandler handles semantic search over past notes.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// SearchRequest is the request payload for note search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchHit is one search result on the wire.
type SearchHit struct {
	NoteID  string  `json:"note_id"`
	ForDate string  `json:"for_date"`
	Score   float32 `json:"score"`
	Preview string  `json:"preview"`
}

// Search embeds the query and returns the nearest notes.
// POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hits, err := h.search.Search(ctx, req.Query, req.Limit)
	if err != nil {
		handleServiceError(w, r, err, "failed to search notes")
		return
	}

	resp := make([]SearchHit, 0, len(hits))
	for _, hit := range hits {
		resp = append(resp, SearchHit{
			NoteID:  hit.NoteID,
			ForDate: hit.ForDate,
			Score:   hit.Score,
			Preview: hit.Preview,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
