// Package events publishes survey lifecycle notifications to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ResponseSubmitted is emitted after a response has been stored.
type ResponseSubmitted struct {
	ResponseID  uint      `json:"response_id"`
	TotalScore  int       `json:"total_score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Publisher delivers survey events to subscribers.
type Publisher interface {
	PublishResponseSubmitted(ctx context.Context, event ResponseSubmitted) error
	Close()
}

// NopPublisher discards every event.
type NopPublisher struct{}

// PublishResponseSubmitted implements Publisher.
func (NopPublisher) PublishResponseSubmitted(context.Context, ResponseSubmitted) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() {}

// NATSPublisher publishes events as JSON on a single subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewPublisher connects to NATS when url is set and falls back to NopPublisher otherwise.
func NewPublisher(url, subject string, logger zerolog.Logger) (Publisher, error) {
	if url == "" {
		return NopPublisher{}, nil
	}
	if subject == "" {
		return nil, fmt.Errorf("nats subject must not be empty")
	}

	conn, err := nats.Connect(url, nats.Name("act-survey"), nats.Timeout(3*time.Second))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return &NATSPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "nats_publisher").Logger(),
	}, nil
}

// PublishResponseSubmitted implements Publisher.
func (p *NATSPublisher) PublishResponseSubmitted(_ context.Context, event ResponseSubmitted) error {
	payload, err := Encode(event)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	p.logger.Debug().Uint("response_id", event.ResponseID).Msg("response event published")
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("nats drain failed")
	}
}

// Encode renders the wire payload of an event.
func Encode(event ResponseSubmitted) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return payload, nil
}
