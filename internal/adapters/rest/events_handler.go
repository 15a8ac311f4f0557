package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/omriland/CasaTrack-sub000/internal/adapters/notifier"
	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
)

// EventsHandler streams dashboard events to the browser over SSE.
type EventsHandler struct {
	notifier *notifier.SSENotifier
}

// NewEventsHandler creates the handler.
func NewEventsHandler(n *notifier.SSENotifier) *EventsHandler {
	return &EventsHandler{notifier: n}
}

// Stream holds the connection open and forwards events until the
// client goes away.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "EventsHandler",
	})
	handlerLogger.Info("New client subscribing to SSE events", nil)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.notifier.AddClient()
	defer h.notifier.RemoveClient(clientChan)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	// SSE comment lines keep intermediaries from closing an idle
	// connection.
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := w.Write(data); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected.", nil)
			return
		}
	}
}
