package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/dto"
)

// ApplicationHandler handles application tracking requests
type ApplicationHandler struct {
	logger       *slog.Logger
	applications ApplicationStore
}

// NewApplicationHandler creates a new ApplicationHandler instance
func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{
		logger:       deps.Logger,
		applications: deps.Applications,
	}
}

// UpsertApplication handles PUT /api/v1/applications
// Records or updates the user's application status for a job
func (h *ApplicationHandler) UpsertApplication(c *gin.Context) {
	var req dto.UpsertApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	if _, err := uuid.Parse(req.JobID); err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: job_id must be a valid UUID", domain.ErrInvalidInput))
		return
	}
	if !domain.ValidApplicationStatus(req.Status) {
		respondError(c, h.logger, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, req.Status))
		return
	}

	app, err := h.applications.UpsertApplication(c.Request.Context(), userID(c), req.JobID, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewApplicationDTO(app))
}

// ListApplications handles GET /api/v1/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.applications.ListApplications(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]dto.ApplicationDTO, len(apps))
	for i := range apps {
		response[i] = dto.NewApplicationDTO(&apps[i])
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: response})
}
