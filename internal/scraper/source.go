package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"unicode/utf8"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
)

// maxDescriptionLen caps stored job descriptions. Boards routinely ship
// multi-page HTML blobs; everything past this point is noise for scoring.
const maxDescriptionLen = 1000

const defaultDescription = "No description available"

// Source fetches raw job postings from one external job board
type Source interface {
	Name() string
	Fetch(ctx context.Context, keyword, location string, limit int) ([]model.RawPosting, error)
}

// classifyFetchErr maps a transport failure onto the domain error taxonomy.
// Deadline and network timeouts become ErrSourceTimeout, everything else
// ErrSourceUnavailable.
func classifyFetchErr(source string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %v", domain.ErrSourceTimeout, source, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, source, err)
}

func truncateDescription(desc string) string {
	if desc == "" {
		return defaultDescription
	}
	if len(desc) <= maxDescriptionLen {
		return desc
	}
	// Back off to a rune boundary so the cut never leaves invalid UTF-8,
	// which Postgres would reject at upsert time.
	cut := maxDescriptionLen
	for cut > 0 && !utf8.RuneStart(desc[cut]) {
		cut--
	}
	return desc[:cut] + "..."
}
