package engine

import (
	"time"

	"instruction-viewer/internal/domain"
)

// AnalyticsEmitter translates state transitions into typed viewer events and
// hands them to the externally supplied sink. It never buffers, retries, or
// blocks; delivery guarantees are the sink's responsibility.
type AnalyticsEmitter struct {
	sink      domain.EventSink
	userID    string
	sessionID string
	now       func() time.Time
}

// NewAnalyticsEmitter creates an emitter bound to one session.
func NewAnalyticsEmitter(sink domain.EventSink, userID, sessionID string, now func() time.Time) *AnalyticsEmitter {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsEmitter{
		sink:      sink,
		userID:    userID,
		sessionID: sessionID,
		now:       now,
	}
}

// Emit constructs a viewer event with the current wall-clock timestamp and
// delivers it to the sink. A nil sink drops events.
func (e *AnalyticsEmitter) Emit(eventType domain.EventType, data map[string]any) {
	if e.sink == nil {
		return
	}
	e.sink(domain.ViewerEvent{
		Type:      eventType,
		Timestamp: e.now(),
		Data:      data,
		UserID:    e.userID,
		SessionID: e.sessionID,
	})
}
