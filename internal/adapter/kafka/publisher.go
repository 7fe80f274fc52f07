// Package kafka streams cleaned earthquake records to a Kafka sink topic for
// downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/config"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

// Publisher produces cleaned records to the sink topic.
// It implements cleaner.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Publisher{writer: w, clock: clock, logger: logger}
}

// Publish serializes and produces the records in a single WriteMessages call
// so the whole dataset lands or fails together.
func (p *Publisher) Publish(ctx context.Context, quakes []domain.Quake) error {
	if len(quakes) == 0 {
		return nil
	}
	cleanedAt := p.clock.Now().UTC()
	msgs := make([]kafkago.Message, len(quakes))
	for i := range quakes {
		msg, err := serializeToMessage(quakes[i], cleanedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write to sink topic: %w", err)
	}
	p.logger.Debug("published cleaned records", "count", len(quakes))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a cleaned record into a Kafka message keyed by
// event ID, so replays of the same dataset compact per event.
func serializeToMessage(q domain.Quake, cleanedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize earthquake record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(q.EventID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(domain.Severity(q.TotalCasualties))},
			{Key: "cleaned_at", Value: []byte(cleanedAt.Format(time.RFC3339))},
		},
	}, nil
}
