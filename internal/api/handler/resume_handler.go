package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/dto"
	"github.com/jobscout/jobscout-be/internal/files"
)

// ResumeHandler handles resume uploads
type ResumeHandler struct {
	logger   *slog.Logger
	profiles ProfileStore
	resumes  ResumeStore
	maxSize  int64
}

// NewResumeHandler creates a new ResumeHandler instance
func NewResumeHandler(deps *Dependencies) *ResumeHandler {
	return &ResumeHandler{
		logger:   deps.Logger,
		profiles: deps.Profiles,
		resumes:  deps.Resumes,
		maxSize:  deps.MaxResumeSize,
	}
}

// UploadResume handles POST /api/v1/profile/resume
// Accepts a multipart upload, stores the file and records its URL on the
// profile
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: resume file is required", domain.ErrInvalidInput))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := files.ValidateResume(contentType, fileHeader.Size, h.maxSize); err != nil {
		respondError(c, h.logger, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: failed to open upload: %v", domain.ErrInvalidInput, err))
		return
	}
	defer file.Close()

	uid := userID(c)

	resumeURL, err := h.resumes.Upload(c.Request.Context(), uid, fileHeader.Filename, contentType, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.profiles.SetResumeURL(c.Request.Context(), uid, resumeURL); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Resume uploaded",
		slog.String("user_id", uid),
		slog.String("filename", fileHeader.Filename),
	)

	c.JSON(http.StatusOK, dto.UploadResumeResponse{ResumeURL: resumeURL})
}
