package dto

import (
	"time"

	"github.com/jobscout/jobscout-be/internal/api/model"
)

type CreateProfileRequest struct {
	Skills     []string `json:"skills" binding:"required"`
	Experience string   `json:"experience"`
}

type UpdateProfileRequest struct {
	Skills     []string `json:"skills" binding:"required"`
	Experience string   `json:"experience"`
}

type ProfileDTO struct {
	UserID     string   `json:"user_id"`
	ResumeURL  string   `json:"resume_url,omitempty"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

type UploadResumeResponse struct {
	ResumeURL string `json:"resume_url"`
}

func NewProfileDTO(profile *model.Profile) ProfileDTO {
	d := ProfileDTO{
		UserID:     profile.UserID,
		Skills:     profile.Skills,
		Experience: profile.Experience,
		CreatedAt:  profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  profile.UpdatedAt.Format(time.RFC3339),
	}
	if profile.ResumeURL != nil {
		d.ResumeURL = *profile.ResumeURL
	}
	return d
}
