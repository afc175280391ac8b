package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout/jobscout-be/shared/logger"
)

type stubAMQP struct {
	body        []byte
	contentType string
	err         error
}

func (s *stubAMQP) PublishWithRetry(ctx context.Context, body []byte, contentType string) error {
	s.body = body
	s.contentType = contentType
	return s.err
}

func TestPublisher_PublishSearchCompleted(t *testing.T) {
	client := &stubAMQP{}
	p := NewPublisher(client, logger.NewDefault().Logger)

	err := p.PublishSearchCompleted(context.Background(), "u1", "engineer", 7, 64.5)
	require.NoError(t, err)

	assert.Equal(t, "application/json", client.contentType)

	var event SearchCompleted
	require.NoError(t, json.Unmarshal(client.body, &event))
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, "engineer", event.Keyword)
	assert.Equal(t, 7, event.Count)
	assert.InDelta(t, 64.5, event.AverageScore, 0.001)
	assert.False(t, event.CompletedAt.IsZero())
}

func TestPublisher_PublishSearchCompleted_BrokerFailure(t *testing.T) {
	client := &stubAMQP{err: errors.New("channel closed")}
	p := NewPublisher(client, logger.NewDefault().Logger)

	err := p.PublishSearchCompleted(context.Background(), "u1", "engineer", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish search completed event")
}
