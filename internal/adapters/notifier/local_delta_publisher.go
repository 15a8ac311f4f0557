package notifier

import (
	"context"
	"sync/atomic"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
)

// LocalDeltaPublisher implements NoteEventPublisherPort without a
// broker: deltas go straight to dashboard clients. Used when RabbitMQ
// is disabled, where the broker round trip has nothing to add for a
// single process.
type LocalDeltaPublisher struct {
	notifier port.NotifierPort
	nonce    atomic.Uint64
}

// NewLocalDeltaPublisher creates the publisher.
func NewLocalDeltaPublisher(n port.NotifierPort) *LocalDeltaPublisher {
	return &LocalDeltaPublisher{notifier: n}
}

// NextNonce returns the next nonce in the sequence.
func (p *LocalDeltaPublisher) NextNonce() uint64 {
	return p.nonce.Add(1)
}

// PublishNoteCountDelta forwards the event to connected clients.
func (p *LocalDeltaPublisher) PublishNoteCountDelta(ctx context.Context, delta domain.NoteCountDelta) error {
	p.notifier.Notify(ctx, domain.DashboardEvent{Type: "note_count_delta", Payload: delta})
	return nil
}
