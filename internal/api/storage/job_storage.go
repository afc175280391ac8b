package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
)

// Job list orderings
const (
	OrderByFitScore  = "fit_score"
	OrderByCreatedAt = "created_at"
)

const jobColumns = `job_id, title, company, description, location, source_url, source, fit_score, scraped_at, created_at`

// JobFilter controls job listing
type JobFilter struct {
	OrderBy  string
	PageSize int
	Cursor   *JobCursor
}

// JobCursor marks the position of the last row of the previous page
type JobCursor struct {
	FitScore  int
	CreatedAt time.Time
	JobID     string
}

// UpsertBatch merges scored postings into the job store, keyed by source
// URL. Existing rows get their fit score, description, location, source and
// scraped timestamp overwritten; unseen URLs become new rows. The whole
// batch runs in one transaction: it commits fully or not at all.
func (s *Storage) UpsertBatch(ctx context.Context, scored []model.ScoredPosting) ([]model.JobPosting, error) {
	if len(scored) == 0 {
		return []model.JobPosting{}, nil
	}

	tx, err := s.pg.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO job_postings (
			job_id, title, company, description, location,
			source_url, source, fit_score, scraped_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)
		ON CONFLICT (source_url) DO UPDATE SET
			fit_score   = EXCLUDED.fit_score,
			description = EXCLUDED.description,
			location    = EXCLUDED.location,
			source      = EXCLUDED.source,
			scraped_at  = EXCLUDED.scraped_at
		RETURNING ` + jobColumns

	now := time.Now().UTC()
	merged := make([]model.JobPosting, 0, len(scored))

	for _, sp := range scored {
		var job model.JobPosting
		err := tx.QueryRowxContext(
			ctx,
			query,
			uuid.New().String(),
			sp.Title,
			sp.Company,
			sp.Description,
			sp.Location,
			sp.SourceURL,
			sp.Source,
			sp.FitScore,
			now,
			now,
		).StructScan(&job)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert job posting %s: %w", sp.SourceURL, err)
		}
		merged = append(merged, job)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job batch: %w", err)
	}

	s.logger.Info("Job batch reconciled",
		slog.Int("count", len(merged)),
	)

	return merged, nil
}

// GetJobByID retrieves a single job posting
func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.JobPosting, error) {
	var job model.JobPosting
	query := `SELECT ` + jobColumns + ` FROM job_postings WHERE job_id = $1`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: job %s", domain.ErrNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// ListJobs returns jobs ordered by fit score or creation time, newest/best
// first. Fetches one row past PageSize so the caller can detect more pages.
func (s *Storage) ListJobs(ctx context.Context, filter JobFilter) ([]model.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM job_postings`
	args := []interface{}{}

	switch filter.OrderBy {
	case OrderByCreatedAt:
		if filter.Cursor != nil {
			query += ` WHERE (created_at, job_id) < ($1, $2)`
			args = append(args, filter.Cursor.CreatedAt, filter.Cursor.JobID)
		}
		query += ` ORDER BY created_at DESC, job_id DESC`
	default:
		if filter.Cursor != nil {
			query += ` WHERE (fit_score, created_at, job_id) < ($1, $2, $3)`
			args = append(args, filter.Cursor.FitScore, filter.Cursor.CreatedAt, filter.Cursor.JobID)
		}
		query += ` ORDER BY fit_score DESC, created_at DESC, job_id DESC`
	}

	query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
	args = append(args, filter.PageSize+1)

	var jobs []model.JobPosting
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}
