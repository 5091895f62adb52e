// Package kafka publishes shipment domain events to a Kafka topic for the
// notification service.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/shipment"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the part of kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Envelope is the JSON value of every message. Data holds the event fields.
type Envelope struct {
	Event          string    `json:"event"`
	ShipmentID     string    `json:"shipmentId"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
	Data           any       `json:"data"`
}

// Publisher implements ports.EventPublisher. Messages are keyed by shipment
// id so the events of one shipment stay ordered within a partition.
type Publisher struct {
	writer Writer
	logger *slog.Logger
}

func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &skafka.Writer{
		Addr:                   skafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		RequiredAcks:           skafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return NewPublisherWithWriter(w, logger)
}

func NewPublisherWithWriter(w Writer, logger *slog.Logger) *Publisher {
	return &Publisher{writer: w, logger: logger.With("component", "event_publisher")}
}

func (p *Publisher) Publish(ctx context.Context, events ...shipment.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(envelopeOf(event))
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", event.EventName(), err)
		}
		msgs = append(msgs, skafka.Message{
			Key:   []byte(event.AggregateID().String()),
			Value: value,
			Time:  event.OccurredAt(),
			Headers: []skafka.Header{
				{Key: "event", Value: []byte(event.EventName())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish events", "events", len(msgs), "error", err)
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func envelopeOf(event shipment.DomainEvent) Envelope {
	env := Envelope{
		Event:      event.EventName(),
		ShipmentID: event.AggregateID().String(),
		OccurredAt: event.OccurredAt().UTC(),
	}

	switch e := event.(type) {
	case shipment.CreatedEvent:
		env.TrackingNumber = e.TrackingNumber
		env.Data = map[string]any{
			"sender":         e.Sender,
			"receiver":       e.Receiver,
			"amount":         e.Amount,
			"paymentSkipped": e.PaymentSkipped,
		}
	case shipment.StatusChangedEvent:
		env.TrackingNumber = e.TrackingNumber
		env.Data = map[string]any{"from": e.From.String(), "to": e.To.String(), "by": e.By}
	case shipment.FeedbackSubmittedEvent:
		env.TrackingNumber = e.TrackingNumber
		env.Data = map[string]any{"rating": e.Rating, "by": e.By}
	case shipment.CancelledEvent:
		env.TrackingNumber = e.TrackingNumber
		env.Data = map[string]any{"by": e.By}
	default:
		env.Data = map[string]any{}
	}
	return env
}
