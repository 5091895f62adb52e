package kafka_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/kafka"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []skafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPublisher_Publish(t *testing.T) {
	id := kernel.NewUUID()
	at := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

	t.Run("one message per event keyed by shipment", func(t *testing.T) {
		w := &fakeWriter{}
		p := kafka.NewPublisherWithWriter(w, discard)

		err := p.Publish(t.Context(),
			shipment.CreatedEvent{ShipmentID: id, TrackingNumber: "CSQWERTY1234", Sender: "a@example.com",
				Receiver: "b@example.com", Amount: 170, At: at},
			shipment.StatusChangedEvent{ShipmentID: id, TrackingNumber: "CSQWERTY1234",
				From: shipment.Dispatched, To: shipment.InTransit, By: "b@example.com", At: at.Add(time.Hour)},
		)
		require.NoError(t, err)
		require.Len(t, w.msgs, 2)

		for _, msg := range w.msgs {
			assert.Equal(t, id.String(), string(msg.Key))
		}
		assert.Equal(t, "shipment.created", string(w.msgs[0].Headers[0].Value))

		var env struct {
			Event          string         `json:"event"`
			ShipmentID     string         `json:"shipmentId"`
			TrackingNumber string         `json:"trackingNumber"`
			OccurredAt     time.Time      `json:"occurredAt"`
			Data           map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.msgs[1].Value, &env))
		assert.Equal(t, "shipment.status_changed", env.Event)
		assert.Equal(t, id.String(), env.ShipmentID)
		assert.Equal(t, "CSQWERTY1234", env.TrackingNumber)
		assert.True(t, env.OccurredAt.Equal(at.Add(time.Hour)))
		assert.Equal(t, shipment.Dispatched.String(), env.Data["from"])
		assert.Equal(t, shipment.InTransit.String(), env.Data["to"])
	})

	t.Run("nothing to publish", func(t *testing.T) {
		w := &fakeWriter{err: assert.AnError}
		require.NoError(t, kafka.NewPublisherWithWriter(w, discard).Publish(t.Context()))
	})

	t.Run("writer failure is returned", func(t *testing.T) {
		w := &fakeWriter{err: assert.AnError}
		err := kafka.NewPublisherWithWriter(w, discard).Publish(t.Context(),
			shipment.CancelledEvent{ShipmentID: id, TrackingNumber: "CSQWERTY1234", By: "a@example.com", At: at})
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, kafka.NewPublisherWithWriter(w, discard).Close())
	assert.True(t, w.closed)
}
