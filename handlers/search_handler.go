package handlers

import (
	"net/http"
	"strings"

	"lexassist-backend/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles the judgment-search route.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRequest represents the request body for a judgment search
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// Search handles POST /api/search. The service never fails: upstream
// problems yield the fallback judgment list.
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		respondError(c, http.StatusBadRequest, "EMPTY_QUERY", "Query must not be empty")
		return
	}

	results := h.searchService.Search(c.Request.Context(), query)
	respondOK(c, http.StatusOK, gin.H{"judgments": results})
}
