package dto

import (
	"time"

	"github.com/jobscout/jobscout-be/internal/api/model"
)

type ListJobsRequest struct {
	OrderBy  string `form:"order_by"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type ListJobsResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type JobDTO struct {
	JobID       string `json:"job_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	SourceURL   string `json:"source_url"`
	Source      string `json:"source"`
	FitScore    int    `json:"fit_score"`
	ScrapedAt   string `json:"scraped_at"`
	CreatedAt   string `json:"created_at"`
}

func NewJobDTO(job model.JobPosting) JobDTO {
	return JobDTO{
		JobID:       job.JobID,
		Title:       job.Title,
		Company:     job.Company,
		Description: job.Description,
		Location:    job.Location,
		SourceURL:   job.SourceURL,
		Source:      job.Source,
		FitScore:    job.FitScore,
		ScrapedAt:   job.ScrapedAt.Format(time.RFC3339),
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
	}
}
