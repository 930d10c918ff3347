package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/finlane/payledger/internal/domain"
)

// keepAliveInterval is how often an SSE comment is written to detect dead
// connections behind proxies that swallow FIN packets.
const keepAliveInterval = 30 * time.Second

// EventSource is the subscriber side of the change notifier.
type EventSource interface {
	Subscribe() (string, <-chan domain.PaymentCreatedEvent)
	Unsubscribe(id string)
}

// EventsHandler streams payment-created events to clients over
// server-sent events.
type EventsHandler struct {
	source EventSource
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(source EventSource) *EventsHandler {
	return &EventsHandler{source: source}
}

// Stream subscribes the caller and forwards events until it disconnects.
// Events carry the created payment, but subscribers are expected to
// re-query rather than trust the payload shape.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", "")
		return
	}

	// The stream outlives the server's write timeout. Writers that do not
	// support deadlines at all have none to clear.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, events := h.source.Subscribe()
	defer h.source.Unsubscribe(id)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-keepAlive.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()

		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", domain.EventTypePaymentCreated, payload)
			flusher.Flush()
		}
	}
}
