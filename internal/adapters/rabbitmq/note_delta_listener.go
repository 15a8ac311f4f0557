package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/contracts"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/notecount"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
	"github.com/omriland/CasaTrack-sub000/pkg/rabbitmq/rabbitmq_consumer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NoteDeltaListener consumes note-count delta events, applies them to
// the in-memory counters and forwards them to dashboard clients.
// Locally produced events come back with an already-seen nonce and
// fall out at the Apply step.
type NoteDeltaListener struct {
	consumer *rabbitmq_consumer.Consumer
	counters *notecount.Counters
	notifier port.NotifierPort
	logger   port.LoggerPort
}

// NewNoteDeltaListener creates the listener adapter.
func NewNoteDeltaListener(
	consumer *rabbitmq_consumer.Consumer,
	counters *notecount.Counters,
	notifier port.NotifierPort,
	baseLogger port.LoggerPort,
) (*NoteDeltaListener, error) {
	if consumer == nil {
		return nil, fmt.Errorf("consumer cannot be nil")
	}
	return &NoteDeltaListener{
		consumer: consumer,
		counters: counters,
		notifier: notifier,
		logger:   baseLogger.WithFields(port.Fields{"component": "NoteDeltaListener"}),
	}, nil
}

// Start blocks consuming deliveries until the context is canceled.
func (l *NoteDeltaListener) Start(ctx context.Context) error {
	return l.consumer.Start(ctx, l.handleDelivery)
}

// Close shuts the underlying consumer down.
func (l *NoteDeltaListener) Close() error {
	return l.consumer.Close()
}

func (l *NoteDeltaListener) handleDelivery(ctx context.Context, d amqp.Delivery) error {
	msgLogger := l.logger
	if traceID, ok := d.Headers["x-trace-id"].(string); ok && traceID != "" {
		msgLogger = msgLogger.WithFields(port.Fields{"trace_id": traceID})
		ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	}
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)

	if err := contracts.Validate("NoteCountDelta", "1.0.0", d.Body); err != nil {
		// A malformed event will never become valid; drop it instead
		// of requeueing.
		msgLogger.Warn("Dropping note count delta that failed schema validation", port.Fields{"error": err.Error()})
		return nil
	}

	var delta domain.NoteCountDelta
	if err := json.Unmarshal(d.Body, &delta); err != nil {
		msgLogger.Warn("Dropping undecodable note count delta", port.Fields{"error": err.Error()})
		return nil
	}

	if !l.counters.Apply(delta) {
		msgLogger.Debug("Skipped replayed note count delta", port.Fields{"nonce": delta.Nonce})
		return nil
	}

	l.notifier.Notify(ctx, domain.DashboardEvent{Type: "note_count_delta", Payload: delta})
	msgLogger.Debug("Applied note count delta", port.Fields{
		"property_id": delta.PropertyID.String(),
		"delta":       delta.Delta,
		"nonce":       delta.Nonce,
	})
	return nil
}
