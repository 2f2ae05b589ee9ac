package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sifan077/LinkDeck/internal/app/model"
)

// VisitPublisher publishes visit events to NATS JetStream.
type VisitPublisher struct {
	js nats.JetStreamContext
}

// NewVisitPublisher creates a new visit event publisher.
func NewVisitPublisher(js nats.JetStreamContext) *VisitPublisher {
	return &VisitPublisher{js: js}
}

// Publish emits one event for a successful resolution.
func (p *VisitPublisher) Publish(linkID, ip, userAgent string) error {
	event := model.VisitEvent{
		ID:        uuid.NewString(),
		LinkID:    linkID,
		IP:        ip,
		UserAgent: userAgent,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(model.VisitStreamSubject, data)
	return err
}
