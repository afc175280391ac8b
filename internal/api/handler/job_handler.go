package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/dto"
	"github.com/jobscout/jobscout-be/internal/api/storage"
)

// JobHandler handles job posting reads
type JobHandler struct {
	logger *slog.Logger
	jobs   JobStore
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger: deps.Logger,
		jobs:   deps.Jobs,
	}
}

// ListJobs handles GET /api/v1/jobs
// Lists stored job postings ordered by fit score or recency
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	orderBy := storage.OrderByFitScore
	switch req.OrderBy {
	case "", "fit_score":
	case "created_at":
		orderBy = storage.OrderByCreatedAt
	default:
		respondError(c, h.logger, fmt.Errorf("%w: unknown order_by %q", domain.ErrInvalidInput, req.OrderBy))
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: invalid cursor", domain.ErrInvalidInput))
		return
	}

	jobs, err := h.jobs.ListJobs(c.Request.Context(), storage.JobFilter{
		OrderBy:  orderBy,
		PageSize: req.PageSize,
		Cursor:   cursor,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	hasMore := len(jobs) > req.PageSize
	if hasMore {
		jobs = jobs[:req.PageSize]
	}

	jobResponse := make([]dto.JobDTO, len(jobs))
	for i, job := range jobs {
		jobResponse[i] = dto.NewJobDTO(job)
	}

	var nextCursor string
	if hasMore {
		last := jobs[len(jobs)-1]
		nextCursor = EncodeJobCursor(&storage.JobCursor{
			FitScore:  last.FitScore,
			CreatedAt: last.CreatedAt,
			JobID:     last.JobID,
		})
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:       jobResponse,
		NextCursor: nextCursor,
	})
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if _, err := uuid.Parse(jobID); err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: job_id must be a valid UUID", domain.ErrInvalidInput))
		return
	}

	job, err := h.jobs.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobDTO(*job))
}
