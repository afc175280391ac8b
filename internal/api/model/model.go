package model

import (
	"time"

	"github.com/lib/pq"
)

// RawPosting is a normalized job posting fetched from an external source.
// It is transient: postings only reach the database after scoring, through
// the job store's batch upsert.
type RawPosting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location"`
	SourceURL   string `json:"source_url"`
	Source      string `json:"source"`
}

// ScoredPosting is a RawPosting with the fit score attached by the scorer.
type ScoredPosting struct {
	RawPosting
	FitScore    int    `json:"fit_score"`
	ScoreReason string `json:"score_reason,omitempty"`
}

// JobPosting is a persisted job row. SourceURL is the natural key: at most
// one row exists per distinct source URL, shared across all users.
type JobPosting struct {
	JobID       string    `db:"job_id"`
	Title       string    `db:"title"`
	Company     string    `db:"company"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	SourceURL   string    `db:"source_url"`
	Source      string    `db:"source"`
	FitScore    int       `db:"fit_score"`
	ScrapedAt   time.Time `db:"scraped_at"`
	CreatedAt   time.Time `db:"created_at"`
}

// Profile holds a user's search profile. At most one row per user.
type Profile struct {
	UserID     string         `db:"user_id"`
	ResumeURL  *string        `db:"resume_url"`
	Skills     pq.StringArray `db:"skills"`
	Experience string         `db:"experience"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// HasResume reports whether the profile carries a resume reference.
func (p *Profile) HasResume() bool {
	return p != nil && p.ResumeURL != nil && *p.ResumeURL != ""
}

// Application tracks a user's application status against a job.
// At most one row per (user_id, job_id) pair.
type Application struct {
	ApplicationID string     `db:"application_id"`
	UserID        string     `db:"user_id"`
	JobID         string     `db:"job_id"`
	Status        string     `db:"status"`
	AppliedAt     *time.Time `db:"applied_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`

	// Joined posting fields for listing, not columns of the applications table
	JobTitle   string `db:"job_title"`
	JobCompany string `db:"job_company"`
}
