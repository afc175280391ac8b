package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/dto"
	"github.com/jobscout/jobscout-be/internal/api/model"
)

// ProfileHandler handles searcher profile requests
type ProfileHandler struct {
	logger   *slog.Logger
	profiles ProfileStore
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(deps *Dependencies) *ProfileHandler {
	return &ProfileHandler{
		logger:   deps.Logger,
		profiles: deps.Profiles,
	}
}

// CreateProfile handles POST /api/v1/profile
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	profile, err := h.profiles.CreateProfile(c.Request.Context(), &model.Profile{
		UserID:     userID(c),
		Skills:     req.Skills,
		Experience: req.Experience,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProfileDTO(profile))
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileDTO(profile))
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), &model.Profile{
		UserID:     userID(c),
		Skills:     req.Skills,
		Experience: req.Experience,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileDTO(profile))
}
