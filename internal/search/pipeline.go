package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
)

// Fetcher pulls raw postings from the configured job boards
type Fetcher interface {
	Fetch(ctx context.Context, keyword, location string) ([]model.RawPosting, []string, error)
}

// Scorer assigns fit scores to raw postings against a profile
type Scorer interface {
	Score(ctx context.Context, profile *model.Profile, postings []model.RawPosting) ([]model.ScoredPosting, error)
}

// Reconciler merges scored postings into the job store
type Reconciler interface {
	UpsertBatch(ctx context.Context, scored []model.ScoredPosting) ([]model.JobPosting, error)
}

// ProfileReader loads searcher profiles
type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

// EventPublisher announces completed searches. Implementations must not
// block the request path; failures here never fail a search.
type EventPublisher interface {
	PublishSearchCompleted(ctx context.Context, userID, keyword string, count int, averageScore float64) error
}

// Result is the outcome of one completed search run
type Result struct {
	Jobs         []model.JobPosting
	Count        int
	Keyword      string
	Location     string
	Sources      []string
	AverageScore float64
	Message      string
}

// Config carries the per-stage deadlines
type Config struct {
	FetchTimeout time.Duration
	ScoreTimeout time.Duration
}

// Pipeline runs a search end to end: validate, fetch, score, reconcile.
// Each run either finishes all stages or aborts at the first failing one;
// there are no partial results and no retries.
type Pipeline struct {
	profiles  ProfileReader
	fetcher   Fetcher
	scorer    Scorer
	reconcile Reconciler
	events    EventPublisher
	config    Config
	logger    *slog.Logger
}

// NewPipeline wires a Pipeline from its stage implementations
func NewPipeline(
	profiles ProfileReader,
	fetcher Fetcher,
	scorer Scorer,
	reconcile Reconciler,
	events EventPublisher,
	config Config,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		profiles:  profiles,
		fetcher:   fetcher,
		scorer:    scorer,
		reconcile: reconcile,
		events:    events,
		config:    config,
		logger:    logger,
	}
}

// Run executes one search for the given searcher. Errors wrap exactly one
// domain sentinel so handlers can map them onto HTTP statuses.
func (p *Pipeline) Run(ctx context.Context, userID, keyword, location string) (*Result, error) {
	keyword = strings.TrimSpace(keyword)
	location = strings.TrimSpace(location)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", domain.ErrInvalidInput)
	}

	profile, err := p.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no profile for user %s", domain.ErrMissingResume, userID)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	if !profile.HasResume() {
		return nil, fmt.Errorf("%w: user %s has no resume on file", domain.ErrMissingResume, userID)
	}

	log := p.logger.With(
		slog.String("user_id", userID),
		slog.String("keyword", keyword),
	)

	fetchCtx, cancelFetch := context.WithTimeout(ctx, p.config.FetchTimeout)
	defer cancelFetch()

	postings, sources, err := p.fetcher.Fetch(fetchCtx, keyword, location)
	if err != nil {
		log.Warn("Search aborted while fetching", slog.String("stage", domain.StageFetching), slog.String("error", err.Error()))
		return nil, err
	}

	if len(postings) == 0 {
		log.Info("Search found no jobs")
		return &Result{
			Jobs:     []model.JobPosting{},
			Keyword:  keyword,
			Location: location,
			Sources:  sources,
			Message:  "no jobs found",
		}, nil
	}

	scoreCtx, cancelScore := context.WithTimeout(ctx, p.config.ScoreTimeout)
	defer cancelScore()

	scored, err := p.scorer.Score(scoreCtx, profile, postings)
	if err != nil {
		log.Warn("Search aborted while scoring", slog.String("stage", domain.StageScoring), slog.String("error", err.Error()))
		return nil, err
	}

	jobs, err := p.reconcile.UpsertBatch(ctx, scored)
	if err != nil {
		log.Error("Search aborted while reconciling", slog.String("stage", domain.StageReconciling), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].FitScore > jobs[j].FitScore
	})

	var total int
	for _, sp := range scored {
		total += sp.FitScore
	}
	average := float64(total) / float64(len(scored))

	if p.events != nil {
		if err := p.events.PublishSearchCompleted(ctx, userID, keyword, len(jobs), average); err != nil {
			log.Warn("Failed to publish search completed event", slog.String("error", err.Error()))
		}
	}

	log.Info("Search completed",
		slog.Int("count", len(jobs)),
		slog.Float64("average_score", average),
	)

	return &Result{
		Jobs:         jobs,
		Count:        len(jobs),
		Keyword:      keyword,
		Location:     location,
		Sources:      sources,
		AverageScore: average,
	}, nil
}
