package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
)

// defaultScore is assigned when the model response has no usable line for a
// posting
const defaultScore = 50

// defaultBatchSize is used when no positive batch size is configured
const defaultBatchSize = 5

var scoreLineRe = regexp.MustCompile(`(?m)^\s*Job\s+(\d+)\s*:\s*\[?(\d+)\]?\s*(?:-\s*(.*))?$`)

// contentGenerator is the slice of Generator the matcher needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Matcher scores job postings against a searcher profile using an LLM
type Matcher struct {
	generator contentGenerator
	batchSize int
	logger    *slog.Logger
}

// NewMatcher creates a Matcher scoring batchSize postings per model call
func NewMatcher(generator contentGenerator, batchSize int, logger *slog.Logger) *Matcher {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Matcher{
		generator: generator,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Score assigns a 0-100 fit score and explanation to every posting,
// preserving order. Postings go to the model in batches; a failed batch
// fails the whole call so no posting carries a made-up score.
func (m *Matcher) Score(ctx context.Context, profile *model.Profile, postings []model.RawPosting) ([]model.ScoredPosting, error) {
	scored := make([]model.ScoredPosting, 0, len(postings))

	for start := 0; start < len(postings); start += m.batchSize {
		end := start + m.batchSize
		if end > len(postings) {
			end = len(postings)
		}
		batch := postings[start:end]

		reply, err := m.generator.GenerateContent(ctx, buildPrompt(profile, batch))
		if err != nil {
			return nil, classifyScoreErr(err)
		}

		scores, reasons := parseScores(reply, len(batch))
		for i, p := range batch {
			scored = append(scored, model.ScoredPosting{
				RawPosting:  p,
				FitScore:    scores[i],
				ScoreReason: reasons[i],
			})
		}

		m.logger.Debug("Scored posting batch",
			slog.Int("batch_size", len(batch)),
			slog.Int("total_scored", len(scored)),
		)
	}

	return scored, nil
}

func buildPrompt(profile *model.Profile, batch []model.RawPosting) string {
	var b strings.Builder

	b.WriteString("You are a job fit evaluator. Rate how well each job matches the candidate.\n\n")
	b.WriteString("Candidate profile:\n")
	if len(profile.Skills) > 0 {
		b.WriteString("Skills: " + strings.Join(profile.Skills, ", ") + "\n")
	}
	if profile.Experience != "" {
		b.WriteString("Experience: " + profile.Experience + "\n")
	}
	if profile.ResumeURL != nil {
		b.WriteString("Resume: " + *profile.ResumeURL + "\n")
	}

	b.WriteString("\nJobs:\n")
	for i, p := range batch {
		fmt.Fprintf(&b, "Job %d: %s at %s", i+1, p.Title, p.Company)
		if p.Location != "" {
			fmt.Fprintf(&b, " (%s)", p.Location)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Description: %s\n\n", p.Description)
	}

	b.WriteString("For each job, respond with exactly one line in the form:\n")
	b.WriteString("Job N: [score] - [one-sentence explanation]\n")
	b.WriteString("where score is an integer from 0 to 100.\n")

	return b.String()
}

// parseScores extracts one score and explanation per posting from the model
// reply. Postings the reply skipped get the default score.
func parseScores(reply string, count int) ([]int, []string) {
	scores := make([]int, count)
	reasons := make([]string, count)
	for i := range scores {
		scores[i] = defaultScore
	}

	for _, match := range scoreLineRe.FindAllStringSubmatch(reply, -1) {
		idx, err := strconv.Atoi(match[1])
		if err != nil || idx < 1 || idx > count {
			continue
		}
		score, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		scores[idx-1] = clampScore(score)
		reasons[idx-1] = strings.TrimSpace(strings.Trim(match[3], "[]"))
	}

	return scores, reasons
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func classifyScoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrScoringTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrScoringUnavailable, err)
}
