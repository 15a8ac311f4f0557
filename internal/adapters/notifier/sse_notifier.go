package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
)

// clientChannel carries formatted SSE frames to one open connection.
type clientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event domain.DashboardEvent
}

// SSENotifier implements NotifierPort over server-sent events. The
// dashboard is single-tenant, so there is no per-user routing: every
// event fans out to all open connections (tabs).
type SSENotifier struct {
	clients map[clientChannel]struct{}
	mu      sync.RWMutex

	// eventChan is where use cases drop events for the dispatcher.
	eventChan chan eventWithContext

	logger port.LoggerPort
}

// NewSSENotifier creates the notifier and starts its dispatcher.
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	notifierLogger := baseLogger.WithFields(port.Fields{"component": "SSENotifier"})

	notifier := &SSENotifier{
		clients:   make(map[clientChannel]struct{}),
		eventChan: make(chan eventWithContext, 100),
		logger:    notifierLogger,
	}

	go notifier.dispatcher()

	return notifier
}

// dispatcher runs in the background and never returns.
func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		eventPackage := <-n.eventChan

		eventLogger := contextkeys.LoggerFromContext(eventPackage.ctx).WithFields(port.Fields{
			"component":  "SSENotifier.dispatcher",
			"event_type": eventPackage.event.Type,
		})

		eventBytes, err := json.Marshal(eventPackage.event.Payload)
		if err != nil {
			eventLogger.Error("Failed to marshal event", err, nil)
			continue
		}

		sseMessage := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", eventPackage.event.Type, string(eventBytes)))

		n.mu.RLock()
		for ch := range n.clients {
			// Non-blocking send so a stalled client cannot hold up
			// the dispatcher.
			select {
			case ch <- sseMessage:
			default:
				eventLogger.Warn("Client channel is full or closed, skipping.", nil)
			}
		}
		n.mu.RUnlock()
	}
}

// Notify implements NotifierPort. Use cases hand the event off here
// and continue; delivery happens on the dispatcher goroutine.
func (n *SSENotifier) Notify(ctx context.Context, event domain.DashboardEvent) {
	n.eventChan <- eventWithContext{ctx: ctx, event: event}
}

// AddClient registers a new SSE connection and returns its channel.
func (n *SSENotifier) AddClient() clientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(clientChannel, 100)
	n.clients[ch] = struct{}{}

	n.logger.Info("Client connected", port.Fields{"total_connections": len(n.clients)})
	return ch
}

// RemoveClient drops a connection's channel when it closes.
func (n *SSENotifier) RemoveClient(ch clientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.clients, ch)
	n.logger.Info("Client disconnected.", port.Fields{"remaining_connections": len(n.clients)})
}
