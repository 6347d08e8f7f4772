package handler

import (
	"log/slog"
	"net/http"

	"taskdeck/internal/domain/services"
	"taskdeck/internal/httputil"
)

// SearchHandler handles search HTTP requests
type SearchHandler struct {
	searchService services.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService services.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search matches the query against project names, tags and task content
// GET /search?query=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.searchService.Search(r.Context(), httputil.GetUserID(r), r.URL.Query().Get("query"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}
