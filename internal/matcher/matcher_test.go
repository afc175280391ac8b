package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout/jobscout-be/internal/api/domain"
	"github.com/jobscout/jobscout-be/internal/api/model"
	"github.com/jobscout/jobscout-be/shared/logger"
)

type stubGenerator struct {
	replies []string
	errs    []error
	prompts []string
	calls   int
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", errors.New("no reply queued")
}

func testProfile() *model.Profile {
	resume := "https://files.example.com/resumes/u1.pdf"
	return &model.Profile{
		UserID:     "u1",
		ResumeURL:  &resume,
		Skills:     []string{"Go", "PostgreSQL"},
		Experience: "5 years backend development",
	}
}

func rawPostings(n int) []model.RawPosting {
	postings := make([]model.RawPosting, n)
	for i := range postings {
		postings[i] = model.RawPosting{
			Title:       fmt.Sprintf("Engineer %d", i+1),
			Company:     "Acme",
			Description: "Build things",
			SourceURL:   fmt.Sprintf("https://jobs.example.com/%d", i+1),
			Source:      "jsearch",
		}
	}
	return postings
}

func TestMatcher_Score(t *testing.T) {
	gen := &stubGenerator{
		replies: []string{
			"Job 1: [85] - Strong Go match\nJob 2: [40] - Frontend heavy\nJob 3: [72] - Decent overlap",
		},
	}
	m := NewMatcher(gen, 5, logger.NewDefault().Logger)

	scored, err := m.Score(context.Background(), testProfile(), rawPostings(3))
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, 85, scored[0].FitScore)
	assert.Equal(t, "Strong Go match", scored[0].ScoreReason)
	assert.Equal(t, 40, scored[1].FitScore)
	assert.Equal(t, 72, scored[2].FitScore)

	// order preserved
	assert.Equal(t, "Engineer 1", scored[0].Title)
	assert.Equal(t, "Engineer 3", scored[2].Title)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Go, PostgreSQL")
	assert.Contains(t, gen.prompts[0], "5 years backend development")
	assert.Contains(t, gen.prompts[0], "Job 3: Engineer 3 at Acme")
}

func TestMatcher_Score_Batches(t *testing.T) {
	gen := &stubGenerator{
		replies: []string{
			"Job 1: 90 - a\nJob 2: 80 - b",
			"Job 1: 70 - c",
		},
	}
	m := NewMatcher(gen, 2, logger.NewDefault().Logger)

	scored, err := m.Score(context.Background(), testProfile(), rawPostings(3))
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, []int{90, 80, 70}, []int{scored[0].FitScore, scored[1].FitScore, scored[2].FitScore})
	// numbering restarts per batch
	assert.True(t, strings.Contains(gen.prompts[1], "Job 1: Engineer 3 at Acme"))
}

func TestMatcher_Score_ZeroBatchSizeDefaults(t *testing.T) {
	gen := &stubGenerator{
		replies: []string{
			"Job 1: 10 - a\nJob 2: 20 - b\nJob 3: 30 - c\nJob 4: 40 - d\nJob 5: 50 - e",
			"Job 1: 60 - f",
		},
	}
	m := NewMatcher(gen, 0, logger.NewDefault().Logger)

	scored, err := m.Score(context.Background(), testProfile(), rawPostings(6))
	require.NoError(t, err)
	require.Len(t, scored, 6)

	// six postings split into a batch of five and a batch of one
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, 60, scored[5].FitScore)
}

func TestMatcher_Score_MissingAndOutOfRangeLines(t *testing.T) {
	gen := &stubGenerator{
		replies: []string{
			"Job 1: [150] - Too enthusiastic\nJob 3: [-5] - Broken",
		},
	}
	m := NewMatcher(gen, 5, logger.NewDefault().Logger)

	scored, err := m.Score(context.Background(), testProfile(), rawPostings(3))
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, 100, scored[0].FitScore)
	assert.Equal(t, defaultScore, scored[1].FitScore)
	assert.Empty(t, scored[1].ScoreReason)
	assert.Equal(t, defaultScore, scored[2].FitScore)
}

func TestMatcher_Score_BatchFailureFailsWholeCall(t *testing.T) {
	gen := &stubGenerator{
		replies: []string{"Job 1: 90 - a\nJob 2: 80 - b", ""},
		errs:    []error{nil, errors.New("model overloaded")},
	}
	m := NewMatcher(gen, 2, logger.NewDefault().Logger)

	scored, err := m.Score(context.Background(), testProfile(), rawPostings(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrScoringUnavailable))
	assert.Nil(t, scored)
}

func TestMatcher_Score_TimeoutClassification(t *testing.T) {
	gen := &stubGenerator{
		errs: []error{fmt.Errorf("generate content: %w", context.DeadlineExceeded)},
	}
	m := NewMatcher(gen, 5, logger.NewDefault().Logger)

	_, err := m.Score(context.Background(), testProfile(), rawPostings(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrScoringTimeout))
}

func TestMatcher_Score_NoPostings(t *testing.T) {
	gen := &stubGenerator{}
	m := NewMatcher(gen, 5, logger.NewDefault().Logger)

	scored, err := m.Score(context.Background(), testProfile(), nil)
	require.NoError(t, err)
	assert.Empty(t, scored)
	assert.Zero(t, gen.calls)
}

func TestParseScores(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		count       int
		wantScores  []int
		wantReasons []string
	}{
		{
			name:        "bracketed with reasons",
			reply:       "Job 1: [88] - Great fit\nJob 2: [12] - Wrong stack",
			count:       2,
			wantScores:  []int{88, 12},
			wantReasons: []string{"Great fit", "Wrong stack"},
		},
		{
			name:        "plain numbers no brackets",
			reply:       "Job 1: 60 - ok\nJob 2: 70 - fine",
			count:       2,
			wantScores:  []int{60, 70},
			wantReasons: []string{"ok", "fine"},
		},
		{
			name:        "missing line gets default",
			reply:       "Job 2: [30] - meh",
			count:       2,
			wantScores:  []int{defaultScore, 30},
			wantReasons: []string{"", "meh"},
		},
		{
			name:        "garbage reply",
			reply:       "I cannot rate these jobs.",
			count:       2,
			wantScores:  []int{defaultScore, defaultScore},
			wantReasons: []string{"", ""},
		},
		{
			name:        "index out of range ignored",
			reply:       "Job 7: [99] - ghost",
			count:       2,
			wantScores:  []int{defaultScore, defaultScore},
			wantReasons: []string{"", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, reasons := parseScores(tt.reply, tt.count)
			assert.Equal(t, tt.wantScores, scores)
			assert.Equal(t, tt.wantReasons, reasons)
		})
	}
}
