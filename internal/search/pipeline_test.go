package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
	"github.com/jobscout/jobscout-be/shared/logger"
)

type fakeProfiles struct {
	profile *model.Profile
	err     error
	calls   int
}

func (f *fakeProfiles) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	f.calls++
	return f.profile, f.err
}

type fakeFetcher struct {
	postings []model.RawPosting
	sources  []string
	err      error
	calls    int
}

func (f *fakeFetcher) Fetch(ctx context.Context, keyword, location string) ([]model.RawPosting, []string, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.postings, f.sources, nil
}

type fakeScorer struct {
	scores []int
	err    error
	calls  int
}

func (f *fakeScorer) Score(ctx context.Context, profile *model.Profile, postings []model.RawPosting) ([]model.ScoredPosting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	scored := make([]model.ScoredPosting, len(postings))
	for i, p := range postings {
		scored[i] = model.ScoredPosting{RawPosting: p, FitScore: f.scores[i]}
	}
	return scored, nil
}

type fakeReconciler struct {
	err   error
	calls int
	got   []model.ScoredPosting
}

func (f *fakeReconciler) UpsertBatch(ctx context.Context, scored []model.ScoredPosting) ([]model.JobPosting, error) {
	f.calls++
	f.got = scored
	if f.err != nil {
		return nil, f.err
	}
	jobs := make([]model.JobPosting, len(scored))
	for i, sp := range scored {
		jobs[i] = model.JobPosting{
			JobID:     fmt.Sprintf("job-%d", i+1),
			Title:     sp.Title,
			Company:   sp.Company,
			SourceURL: sp.SourceURL,
			FitScore:  sp.FitScore,
		}
	}
	return jobs, nil
}

type fakePublisher struct {
	err     error
	calls   int
	count   int
	average float64
}

func (f *fakePublisher) PublishSearchCompleted(ctx context.Context, userID, keyword string, count int, averageScore float64) error {
	f.calls++
	f.count = count
	f.average = averageScore
	return f.err
}

type fixture struct {
	profiles  *fakeProfiles
	fetcher   *fakeFetcher
	scorer    *fakeScorer
	reconcile *fakeReconciler
	publisher *fakePublisher
	pipeline  *Pipeline
}

func newFixture() *fixture {
	resume := "https://files.example.com/resumes/u1.pdf"
	f := &fixture{
		profiles: &fakeProfiles{
			profile: &model.Profile{
				UserID:    "u1",
				ResumeURL: &resume,
				Skills:    []string{"Go"},
			},
		},
		fetcher: &fakeFetcher{
			postings: []model.RawPosting{
				{Title: "A", Company: "Acme", SourceURL: "https://e.com/1", Source: "jsearch"},
				{Title: "B", Company: "Globex", SourceURL: "https://e.com/2", Source: "jsearch"},
				{Title: "C", Company: "Initech", SourceURL: "https://e.com/3", Source: "adzuna"},
			},
			sources: []string{"jsearch", "adzuna"},
		},
		scorer:    &fakeScorer{scores: []int{72, 45, 90}},
		reconcile: &fakeReconciler{},
		publisher: &fakePublisher{},
	}
	f.pipeline = NewPipeline(
		f.profiles, f.fetcher, f.scorer, f.reconcile, f.publisher,
		Config{FetchTimeout: time.Second, ScoreTimeout: time.Second},
		logger.NewDefault().Logger,
	)
	return f
}

func TestPipeline_Run(t *testing.T) {
	f := newFixture()

	result, err := f.pipeline.Run(context.Background(), "u1", "engineer", "austin")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Count)
	assert.Equal(t, "engineer", result.Keyword)
	assert.Equal(t, "austin", result.Location)
	assert.Equal(t, []string{"jsearch", "adzuna"}, result.Sources)
	assert.InDelta(t, 69.0, result.AverageScore, 0.001)

	// sorted by fit score, best first
	require.Len(t, result.Jobs, 3)
	assert.Equal(t, 90, result.Jobs[0].FitScore)
	assert.Equal(t, "C", result.Jobs[0].Title)
	assert.Equal(t, 72, result.Jobs[1].FitScore)
	assert.Equal(t, 45, result.Jobs[2].FitScore)

	assert.Equal(t, 1, f.publisher.calls)
	assert.Equal(t, 3, f.publisher.count)
	assert.InDelta(t, 69.0, f.publisher.average, 0.001)
}

func TestPipeline_Run_BlankKeyword(t *testing.T) {
	f := newFixture()

	result, err := f.pipeline.Run(context.Background(), "u1", "   ", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Nil(t, result)

	assert.Zero(t, f.profiles.calls)
	assert.Zero(t, f.fetcher.calls)
}

func TestPipeline_Run_MissingProfile(t *testing.T) {
	f := newFixture()
	f.profiles.profile = nil
	f.profiles.err = fmt.Errorf("%w: profile u1", domain.ErrNotFound)

	_, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingResume))
	assert.Zero(t, f.fetcher.calls)
}

func TestPipeline_Run_ProfileWithoutResume(t *testing.T) {
	f := newFixture()
	f.profiles.profile.ResumeURL = nil

	_, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingResume))
	assert.Zero(t, f.fetcher.calls)
}

func TestPipeline_Run_ProfileStorageFailure(t *testing.T) {
	f := newFixture()
	f.profiles.profile = nil
	f.profiles.err = errors.New("connection reset")

	_, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageFailure))
}

func TestPipeline_Run_EmptyFetchShortCircuits(t *testing.T) {
	f := newFixture()
	f.fetcher.postings = nil
	f.fetcher.sources = []string{"jsearch"}

	result, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.NoError(t, err)

	assert.Empty(t, result.Jobs)
	assert.Zero(t, result.Count)
	assert.Equal(t, "no jobs found", result.Message)
	assert.Equal(t, []string{"jsearch"}, result.Sources)

	assert.Zero(t, f.scorer.calls)
	assert.Zero(t, f.reconcile.calls)
	assert.Zero(t, f.publisher.calls)
}

func TestPipeline_Run_FetchFailure(t *testing.T) {
	f := newFixture()
	f.fetcher.err = fmt.Errorf("%w: jsearch: timed out", domain.ErrSourceTimeout)

	_, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceTimeout))
	assert.Zero(t, f.scorer.calls)
	assert.Zero(t, f.reconcile.calls)
}

func TestPipeline_Run_ScoringFailure(t *testing.T) {
	f := newFixture()
	f.scorer.err = fmt.Errorf("%w: model overloaded", domain.ErrScoringUnavailable)

	_, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrScoringUnavailable))
	assert.Zero(t, f.reconcile.calls)
	assert.Zero(t, f.publisher.calls)
}

func TestPipeline_Run_ReconcileFailure(t *testing.T) {
	f := newFixture()
	f.reconcile.err = errors.New("deadlock detected")

	_, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageFailure))
	assert.Zero(t, f.publisher.calls)
}

func TestPipeline_Run_PublishFailureDoesNotFailSearch(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker unreachable")

	result, err := f.pipeline.Run(context.Background(), "u1", "engineer", "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 1, f.publisher.calls)
}
