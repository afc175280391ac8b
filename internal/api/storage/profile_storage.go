package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
)

const profileColumns = `user_id, resume_url, skills, experience, created_at, updated_at`

// CreateProfile inserts a new searcher profile
func (s *Storage) CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, resume_url, skills, experience)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + profileColumns

	var created model.Profile
	err := s.db.QueryRowxContext(
		ctx,
		query,
		profile.UserID,
		profile.ResumeURL,
		profile.Skills,
		profile.Experience,
	).StructScan(&created)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: profile %s", domain.ErrAlreadyExists, profile.UserID)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &created, nil
}

// GetProfile retrieves a searcher profile
func (s *Storage) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	err := s.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: profile %s", domain.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpdateProfile replaces the skills and experience of an existing profile
func (s *Storage) UpdateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	query := `
		UPDATE profiles
		SET skills = $2, experience = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	var updated model.Profile
	err := s.db.QueryRowxContext(
		ctx,
		query,
		profile.UserID,
		profile.Skills,
		profile.Experience,
	).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: profile %s", domain.ErrNotFound, profile.UserID)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &updated, nil
}

// SetResumeURL records the stored resume location on the profile
func (s *Storage) SetResumeURL(ctx context.Context, userID, resumeURL string) error {
	query := `
		UPDATE profiles
		SET resume_url = $2, updated_at = NOW()
		WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query, userID, resumeURL)
	if err != nil {
		return fmt.Errorf("failed to set resume url: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: profile %s", domain.ErrNotFound, userID)
	}

	return nil
}
