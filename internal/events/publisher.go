package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// SearchCompleted is emitted after a search run finishes reconciling
type SearchCompleted struct {
	UserID       string    `json:"user_id"`
	Keyword      string    `json:"keyword"`
	Count        int       `json:"count"`
	AverageScore float64   `json:"average_score"`
	CompletedAt  time.Time `json:"completed_at"`
}

type amqpPublisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// Publisher emits search lifecycle events to the message broker
type Publisher struct {
	client amqpPublisher
	logger *slog.Logger
}

// NewPublisher creates a Publisher over the given broker client
func NewPublisher(client amqpPublisher, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
	}
}

// PublishSearchCompleted emits a search.completed event
func (p *Publisher) PublishSearchCompleted(ctx context.Context, userID, keyword string, count int, averageScore float64) error {
	event := SearchCompleted{
		UserID:       userID,
		Keyword:      keyword,
		Count:        count,
		AverageScore: averageScore,
		CompletedAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal search completed event: %w", err)
	}

	if err := p.client.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish search completed event: %w", err)
	}

	p.logger.Debug("Published search completed event",
		slog.String("user_id", userID),
		slog.String("keyword", keyword),
	)

	return nil
}
