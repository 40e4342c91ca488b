package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"instruction-viewer/internal/domain"
	"instruction-viewer/internal/service"
)

// EventsHandler streams viewer events to clients over server-sent events.
type EventsHandler struct {
	broadcaster *service.Broadcaster
	logger      domain.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(broadcaster *service.Broadcaster, logger domain.Logger) *EventsHandler {
	return &EventsHandler{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Stream subscribes the client to the viewer event stream until it
// disconnects. Events the client cannot keep up with are dropped by the
// broadcaster, never queued unbounded.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, unsubscribe := h.broadcaster.Subscribe()
	defer unsubscribe()
	h.logger.Debug("Event stream subscriber connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("Event stream subscriber disconnected", "remote", r.RemoteAddr)
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprint(w, formatSSE(event))
			flusher.Flush()
		}
	}
}

// formatSSE renders one viewer event in SSE wire format.
func formatSSE(event domain.ViewerEvent) string {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Sprintf("event: %s\ndata: {\"error\":\"marshal failure\"}\n\n", event.Type)
	}
	return fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload)
}
