package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
	"github.com/jobscout/jobscout-be/internal/api/storage"
	"github.com/jobscout/jobscout-be/internal/search"
)

// SearchRunner runs the search pipeline end to end
type SearchRunner interface {
	Run(ctx context.Context, userID, keyword, location string) (*search.Result, error)
}

// JobStore reads persisted job postings
type JobStore interface {
	ListJobs(ctx context.Context, filter storage.JobFilter) ([]model.JobPosting, error)
	GetJobByID(ctx context.Context, jobID string) (*model.JobPosting, error)
}

// ProfileStore manages searcher profiles
type ProfileStore interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	SetResumeURL(ctx context.Context, userID, resumeURL string) error
}

// ApplicationStore manages application tracking rows
type ApplicationStore interface {
	UpsertApplication(ctx context.Context, userID, jobID, status string) (*model.Application, error)
	ListApplications(ctx context.Context, userID string) ([]model.Application, error)
}

// ResumeStore uploads resume files to external storage
type ResumeStore interface {
	Upload(ctx context.Context, userID, filename, contentType string, content io.Reader) (string, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger        *slog.Logger
	Search        SearchRunner
	Jobs          JobStore
	Profiles      ProfileStore
	Applications  ApplicationStore
	Resumes       ResumeStore
	MaxResumeSize int64
}

// userID returns the authenticated user id set by the identity middleware
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}

// respondError maps a domain error onto an HTTP status and writes the
// response. Ownership violations deliberately come out as plain 404s.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingResume):
		status = http.StatusPreconditionFailed
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrSourceUnavailable), errors.Is(err, domain.ErrScoringUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrSourceTimeout), errors.Is(err, domain.ErrScoringTimeout):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	logger.Warn("Request rejected",
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	c.JSON(status, gin.H{"error": err.Error()})
}
