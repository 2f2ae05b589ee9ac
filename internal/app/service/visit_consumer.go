package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sifan077/LinkDeck/internal/app/model"
	infraprom "github.com/sifan077/LinkDeck/internal/infra/prometheus"
	"go.uber.org/zap"
)

// VisitConsumer drains visit events from JetStream for operational visibility.
// Events are logged and counted; nothing is persisted, the authoritative visit
// count already lives on the link row.
type VisitConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
}

// NewVisitConsumer creates a new visit event consumer.
func NewVisitConsumer(js nats.JetStreamContext, logger *zap.Logger) *VisitConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitConsumer{js: js, logger: logger}
}

// Start ensures the stream and durable consumer exist and begins consuming.
func (c *VisitConsumer) Start() error {
	_, err := c.js.StreamInfo(model.VisitStreamName)
	if err != nil {
		_, err = c.js.AddStream(&nats.StreamConfig{
			Name:     model.VisitStreamName,
			Subjects: []string{model.VisitStreamSubject},
			MaxBytes: model.VisitStreamMaxBytes,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
	}

	_, err = c.js.ConsumerInfo(model.VisitStreamName, model.VisitConsumerName)
	if err != nil {
		_, err = c.js.AddConsumer(model.VisitStreamName, &nats.ConsumerConfig{
			Durable:   model.VisitConsumerName,
			AckPolicy: nats.AckExplicitPolicy,
		})
		if err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
	}

	sub, err := c.js.PullSubscribe(model.VisitStreamSubject, model.VisitConsumerName)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	go c.consume(sub)
	return nil
}

func (c *VisitConsumer) consume(sub *nats.Subscription) {
	for {
		msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
		if err != nil && err != nats.ErrTimeout {
			c.logger.Error("failed to fetch visit events", zap.Error(err))
			continue
		}

		for _, msg := range msgs {
			var event model.VisitEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				c.logger.Error("failed to unmarshal visit event", zap.Error(err))
				msg.Nak()
				continue
			}

			infraprom.VisitEventsConsumed.Inc()
			c.logger.Debug("visit recorded",
				zap.String("id", event.ID),
				zap.String("link_id", event.LinkID),
				zap.String("ip", event.IP),
				zap.Time("timestamp", event.Timestamp),
			)

			msg.Ack()
		}
	}
}
