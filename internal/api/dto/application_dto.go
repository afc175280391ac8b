package dto

import (
	"time"

	"github.com/jobscout/jobscout-be/internal/api/model"
)

type UpsertApplicationRequest struct {
	JobID  string `json:"job_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type ListApplicationsResponse struct {
	Applications []ApplicationDTO `json:"applications"`
}

type ApplicationDTO struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title,omitempty"`
	JobCompany    string `json:"job_company,omitempty"`
	Status        string `json:"status"`
	AppliedAt     string `json:"applied_at,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func NewApplicationDTO(app *model.Application) ApplicationDTO {
	d := ApplicationDTO{
		ApplicationID: app.ApplicationID,
		JobID:         app.JobID,
		JobTitle:      app.JobTitle,
		JobCompany:    app.JobCompany,
		Status:        app.Status,
		CreatedAt:     app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     app.UpdatedAt.Format(time.RFC3339),
	}
	if app.AppliedAt != nil {
		d.AppliedAt = app.AppliedAt.Format(time.RFC3339)
	}
	return d
}
