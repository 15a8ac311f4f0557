package port

import (
	"context"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
)

// NoteEventPublisherPort publishes note-count delta events to the
// broker. The publisher owns the monotonically increasing nonce.
type NoteEventPublisherPort interface {
	PublishNoteCountDelta(ctx context.Context, delta domain.NoteCountDelta) error
	NextNonce() uint64
}

// EventListenerPort is a long-running consumer of broker events.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}

// NotifierPort pushes events to connected dashboard clients. It is
// injected wherever the old implementation reached for a process-global
// toast queue.
type NotifierPort interface {
	Notify(ctx context.Context, event domain.DashboardEvent)
}
