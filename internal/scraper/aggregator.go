package scraper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jobscout/jobscout-be/internal/api/model"
)

// Aggregator queries the configured sources in order and merges their
// results into one deduplicated list
type Aggregator struct {
	sources []Source
	limit   int
	logger  *slog.Logger
}

// NewAggregator creates an Aggregator over the given sources. limit caps
// the total number of postings returned across all sources.
func NewAggregator(sources []Source, limit int, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		sources: sources,
		limit:   limit,
		logger:  logger,
	}
}

// Fetch queries each source in order and deduplicates the combined results
// by source URL and by normalized title+company. A source failure is
// tolerated as long as at least one source delivers; if every source fails,
// the first failure is returned. The returned source names list the sources
// that actually contributed postings.
func (a *Aggregator) Fetch(ctx context.Context, keyword, location string) ([]model.RawPosting, []string, error) {
	var (
		postings  []model.RawPosting
		succeeded []string
		firstErr  error
	)

	seenURL := make(map[string]bool)
	seenJob := make(map[string]bool)

	for _, src := range a.sources {
		if len(postings) >= a.limit {
			break
		}

		fetched, err := src.Fetch(ctx, keyword, location, a.limit-len(postings))
		if err != nil {
			a.logger.Warn("Job source failed",
				slog.String("source", src.Name()),
				slog.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		added := 0
		for _, p := range fetched {
			key := dedupKey(p.Title, p.Company)
			if seenURL[p.SourceURL] || seenJob[key] {
				continue
			}
			seenURL[p.SourceURL] = true
			seenJob[key] = true
			postings = append(postings, p)
			added++
		}

		succeeded = append(succeeded, src.Name())
		a.logger.Info("Job source fetched",
			slog.String("source", src.Name()),
			slog.Int("fetched", len(fetched)),
			slog.Int("added", added),
		)
	}

	if len(succeeded) == 0 && firstErr != nil {
		return nil, nil, firstErr
	}

	return postings, succeeded, nil
}

func dedupKey(title, company string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(company))
}
