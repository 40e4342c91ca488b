package domain

import "time"

// EventType identifies a viewer analytics event.
type EventType string

const (
	EventViewStart       EventType = "view_start"
	EventViewEnd         EventType = "view_end"
	EventPageTurn        EventType = "page_turn"
	EventProgressUpdate  EventType = "progress_update"
	EventBookmarkAdd     EventType = "bookmark_add"
	EventBookmarkRemove  EventType = "bookmark_remove"
	EventNoteAdd         EventType = "note_add"
	EventNoteEdit        EventType = "note_edit"
	EventNoteDelete      EventType = "note_delete"
	EventHighlightAdd    EventType = "highlight_add"
	EventHighlightRemove EventType = "highlight_remove"
	EventSearch          EventType = "search"
	EventShare           EventType = "share"
	EventExport          EventType = "export"
	EventPrint           EventType = "print"
	EventZoom            EventType = "zoom"
	EventRotate          EventType = "rotate"
	EventFullscreen      EventType = "fullscreen_toggle"
	EventSettingsUpdate  EventType = "settings_update"
	EventAutoScrollStart EventType = "auto_scroll_start"
	EventAutoScrollStop  EventType = "auto_scroll_stop"
)

// ViewerEvent is one analytics record. The engine emits events and never
// stores them; delivery guarantees belong to the sink.
type ViewerEvent struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
	UserID    string         `json:"user_id"`
	SessionID string         `json:"session_id"`
}

// EventSink receives emitted viewer events. Sinks must not block; the engine
// calls them synchronously on every mutation.
type EventSink func(ViewerEvent)
