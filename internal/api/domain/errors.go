package domain

import "errors"

var (
	// ErrInvalidInput is returned when caller-supplied fields are missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingResume is returned when a search is triggered for a profile without a resume
	ErrMissingResume = errors.New("profile has no resume")

	// ErrSourceUnavailable is returned when no job source can be reached
	ErrSourceUnavailable = errors.New("job source unavailable")

	// ErrSourceTimeout is returned when fetching from job sources exceeds the fetch deadline
	ErrSourceTimeout = errors.New("job source timed out")

	// ErrScoringUnavailable is returned when the scoring backend cannot be reached
	ErrScoringUnavailable = errors.New("scoring service unavailable")

	// ErrScoringTimeout is returned when scoring exceeds the scoring deadline
	ErrScoringTimeout = errors.New("scoring service timed out")

	// ErrStorageFailure is returned when reconciling scored postings into the job store fails
	ErrStorageFailure = errors.New("storage failure")

	// ErrNotFound is returned for lookups against a non-existent identity or an ownership mismatch
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a uniqueness constraint rejects a duplicate create
	ErrAlreadyExists = errors.New("already exists")
)
