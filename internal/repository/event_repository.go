// Package repository provides the external-store adapters the engine notifies
// through its sink callback.
package repository

import (
	"fmt"
	"time"

	"instruction-viewer/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// EventRepository persists viewer events into the Supabase viewer_events
// table. It sits behind the sink callback: the engine never knows about it,
// and store failures are logged, never propagated.
type EventRepository struct {
	client *supabase.Client
	logger domain.Logger
}

// NewEventRepository connects to Supabase using the configured URL and key.
func NewEventRepository(config domain.Config, logger domain.Logger) (*EventRepository, error) {
	url := config.GetSupabaseURL()
	key := config.GetSupabaseKey()
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	logger.Info("Event repository connected", "url", url)
	return &EventRepository{client: client, logger: logger}, nil
}

// Store inserts one viewer event.
func (r *EventRepository) Store(event domain.ViewerEvent) error {
	row := map[string]interface{}{
		"event_type":  string(event.Type),
		"user_id":     event.UserID,
		"session_id":  event.SessionID,
		"occurred_at": event.Timestamp.Format(time.RFC3339Nano),
	}
	if event.Data != nil {
		row["event_data"] = event.Data
	}

	_, _, err := r.client.From("viewer_events").
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to store viewer event: %w", err)
	}
	return nil
}

// Sink adapts the repository into an event sink. Delivery is fire-and-forget:
// the insert runs off the emitting goroutine and failures are only logged.
func (r *EventRepository) Sink() domain.EventSink {
	return func(event domain.ViewerEvent) {
		go func() {
			if err := r.Store(event); err != nil {
				r.logger.Error("Failed to persist viewer event", err, "type", string(event.Type), "session_id", event.SessionID)
			}
		}()
	}
}
