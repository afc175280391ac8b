package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/jobscout/jobscout-be/shared/postgresql"
)

// Storage handles all database operations for the API service
type Storage struct {
	pg     *postgresql.Client
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		pg:     pg,
		db:     pg.GetDB(),
		logger: logger,
	}
}

// Migrate creates the schema if it does not exist yet. The UNIQUE
// constraints on job_postings.source_url and applications(user_id, job_id)
// are the concurrency-safety mechanism for upserts; there is no
// application-level locking.
func (s *Storage) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id     TEXT PRIMARY KEY,
			resume_url  TEXT,
			skills      TEXT[] NOT NULL DEFAULT '{}',
			experience  TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS job_postings (
			job_id      TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			company     TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			source_url  TEXT NOT NULL UNIQUE,
			source      TEXT NOT NULL DEFAULT '',
			fit_score   INT NOT NULL DEFAULT 0,
			scraped_at  TIMESTAMPTZ NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_job_postings_fit_score
			ON job_postings (fit_score DESC, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS applications (
			application_id TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			job_id         TEXT NOT NULL REFERENCES job_postings (job_id),
			status         TEXT NOT NULL CHECK (status IN ('applied', 'not_applied')),
			applied_at     TIMESTAMPTZ,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, job_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_user ON applications (user_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	s.logger.Info("Database schema ready")
	return nil
}
