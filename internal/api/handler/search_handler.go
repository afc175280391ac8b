package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/dto"
)

// SearchHandler handles search requests
type SearchHandler struct {
	logger *slog.Logger
	search SearchRunner
}

// NewSearchHandler creates a new SearchHandler instance
func NewSearchHandler(deps *Dependencies) *SearchHandler {
	return &SearchHandler{
		logger: deps.Logger,
		search: deps.Search,
	}
}

// RunSearch handles POST /api/v1/search
// Runs the fetch-score-reconcile pipeline for the authenticated user
func (h *SearchHandler) RunSearch(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	result, err := h.search.Run(c.Request.Context(), userID(c), req.Keyword, req.Location)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSearchResponse(result))
}
