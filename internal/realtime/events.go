package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const subjectConversionCompleted = "conversion.completed"

// ConversionCompleted is published after a workflow has been converted and
// stored, so downstream consumers (notifiers, audit sinks) can react.
type ConversionCompleted struct {
	PublicID     string `json:"publicId"`
	Name         string `json:"name"`
	Checksum     string `json:"checksum"`
	NodeCount    int    `json:"nodeCount"`
	CycleWarning bool   `json:"cycleWarning"`
}

// Publisher pushes conversion lifecycle events onto NATS. A nil Publisher is
// valid and drops every event, which keeps the API usable without a broker.
type Publisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

func NewPublisher(natsURL string, logger zerolog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc, logger: logger}, nil
}

// PublishConversionCompleted sends the event; failures are logged, not fatal.
func (p *Publisher) PublishConversionCompleted(evt ConversionCompleted) {
	if p == nil || p.conn == nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to marshal conversion event")
		return
	}
	if err := p.conn.Publish(subjectConversionCompleted, data); err != nil {
		p.logger.Error().Err(err).Str("subject", subjectConversionCompleted).Msg("Failed to publish conversion event")
	}
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Error().Err(err).Msg("nats drain")
	}
}
