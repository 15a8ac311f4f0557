package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
	"github.com/omriland/CasaTrack-sub000/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NoteDeltaPublisher puts note-count delta events on the broker. It
// owns the nonce counter, so every published event carries a strictly
// increasing nonce for the lifetime of the process.
type NoteDeltaPublisher struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
	nonce      atomic.Uint64
}

// NewNoteDeltaPublisher creates the publisher adapter.
func NewNoteDeltaPublisher(producer *rabbitmq_producer.Publisher, routingKey string) (*NoteDeltaPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &NoteDeltaPublisher{producer: producer, routingKey: routingKey}, nil
}

// NextNonce returns the next nonce in the sequence.
func (a *NoteDeltaPublisher) NextNonce() uint64 {
	return a.nonce.Add(1)
}

// PublishNoteCountDelta sends the event with persistent delivery.
func (a *NoteDeltaPublisher) PublishNoteCountDelta(ctx context.Context, delta domain.NoteCountDelta) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "NoteDeltaPublisher",
		"routing_key": a.routingKey,
		"property_id": delta.PropertyID.String(),
		"nonce":       delta.Nonce,
	})

	deltaJSON, err := json.Marshal(delta)
	if err != nil {
		adapterLogger.Error("Failed to marshal note count delta to JSON", err, nil)
		return fmt.Errorf("failed to marshal note count delta: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         deltaJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "NoteCountDelta",
			"event-version": "1.0.0",
		},
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish note count delta", err, nil)
		return err
	}

	adapterLogger.Debug("Published note count delta", port.Fields{"delta": delta.Delta})
	return nil
}
