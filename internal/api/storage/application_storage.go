package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
)

// UpsertApplication records or updates a searcher's application status for a
// job. One row per (user, job): repeated calls flip the status in place.
// applied_at keeps the timestamp of the first transition to applied and is
// cleared when the status goes back to not_applied.
func (s *Storage) UpsertApplication(ctx context.Context, userID, jobID, status string) (*model.Application, error) {
	query := `
		INSERT INTO applications (application_id, user_id, job_id, status, applied_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 = 'applied' THEN NOW() END)
		ON CONFLICT (user_id, job_id) DO UPDATE SET
			status     = EXCLUDED.status,
			applied_at = CASE
				WHEN EXCLUDED.status = 'applied' THEN COALESCE(applications.applied_at, NOW())
			END,
			updated_at = NOW()
		RETURNING application_id, user_id, job_id, status, applied_at, created_at, updated_at`

	var app model.Application
	err := s.db.QueryRowxContext(
		ctx,
		query,
		uuid.New().String(),
		userID,
		jobID,
		status,
	).StructScan(&app)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, fmt.Errorf("%w: job %s", domain.ErrNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to upsert application: %w", err)
	}

	return &app, nil
}

// ListApplications returns the searcher's applications with the job title
// and company joined in, most recently touched first
func (s *Storage) ListApplications(ctx context.Context, userID string) ([]model.Application, error) {
	query := `
		SELECT
			a.application_id, a.user_id, a.job_id, a.status,
			a.applied_at, a.created_at, a.updated_at,
			j.title AS job_title, j.company AS job_company
		FROM applications a
		JOIN job_postings j ON j.job_id = a.job_id
		WHERE a.user_id = $1
		ORDER BY a.updated_at DESC`

	var apps []model.Application
	if err := s.db.SelectContext(ctx, &apps, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}
