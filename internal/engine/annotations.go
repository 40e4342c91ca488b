package engine

import (
	"time"

	"instruction-viewer/internal/domain"

	"github.com/google/uuid"
)

// AnnotationManager owns add/update/delete for notes and highlights attached
// to a session, plus the bookmark flag. It is the only mutator of the
// session's annotation state, which keeps the invariants (non-empty content,
// valid offset ordering) enforceable in one place.
type AnnotationManager struct {
	session *domain.ReadingSession
	emitter *AnalyticsEmitter
	logger  domain.Logger
	now     func() time.Time
	newID   func() string
}

// NewAnnotationManager creates a manager bound to one session.
func NewAnnotationManager(session *domain.ReadingSession, emitter *AnalyticsEmitter, logger domain.Logger, now func() time.Time) *AnnotationManager {
	if now == nil {
		now = time.Now
	}
	return &AnnotationManager{
		session: session,
		emitter: emitter,
		logger:  logger,
		now:     now,
		newID:   uuid.NewString,
	}
}

// ToggleBookmark flips the session bookmark flag. It always succeeds.
func (m *AnnotationManager) ToggleBookmark() bool {
	m.session.Bookmarked = !m.session.Bookmarked
	eventType := domain.EventBookmarkRemove
	if m.session.Bookmarked {
		eventType = domain.EventBookmarkAdd
	}
	m.emitter.Emit(eventType, map[string]any{"bookmarked": m.session.Bookmarked})
	return m.session.Bookmarked
}

// AddNote appends a new note at the given scroll position.
func (m *AnnotationManager) AddNote(content string, position float64) (*domain.ReadingNote, error) {
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Message: "note content is required"}
	}
	now := m.now()
	note := domain.ReadingNote{
		ID:        m.newID(),
		Content:   content,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.session.Notes = append(m.session.Notes, note)
	m.logger.Debug("Note added", "note_id", note.ID, "document_id", m.session.DocumentID)
	m.emitter.Emit(domain.EventNoteAdd, map[string]any{"note_id": note.ID, "position": position})
	return &note, nil
}

// UpdateNote replaces the content of an existing note. A missing id is a
// NotFound failure, not a silent no-op; callers need the signal.
func (m *AnnotationManager) UpdateNote(noteID, content string) (*domain.ReadingNote, error) {
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Message: "note content is required"}
	}
	for i := range m.session.Notes {
		if m.session.Notes[i].ID != noteID {
			continue
		}
		m.session.Notes[i].Content = content
		m.session.Notes[i].UpdatedAt = m.now()
		m.emitter.Emit(domain.EventNoteEdit, map[string]any{"note_id": noteID})
		return &m.session.Notes[i], nil
	}
	return nil, domain.ErrNoteNotFound
}

// DeleteNote removes the note if present. Deleting a missing id is a no-op.
func (m *AnnotationManager) DeleteNote(noteID string) {
	for i := range m.session.Notes {
		if m.session.Notes[i].ID != noteID {
			continue
		}
		m.session.Notes = append(m.session.Notes[:i], m.session.Notes[i+1:]...)
		m.emitter.Emit(domain.EventNoteDelete, map[string]any{"note_id": noteID})
		return
	}
}

// AddHighlight records a colored span over [start, end). An empty color takes
// the first entry of the enumerated set.
func (m *AnnotationManager) AddHighlight(text string, start, end int, color, note string) (*domain.Highlight, error) {
	if text == "" {
		return nil, &domain.ValidationError{Field: "text", Message: "highlight text is required"}
	}
	if start >= end {
		return nil, &domain.ValidationError{Field: "start_position", Message: "start position must be before end position"}
	}
	if color == "" {
		color = domain.HighlightColors[0]
	} else if !domain.ValidHighlightColor(color) {
		return nil, &domain.ValidationError{Field: "color", Message: "unknown highlight color"}
	}
	highlight := domain.Highlight{
		ID:        m.newID(),
		Text:      text,
		Start:     start,
		End:       end,
		Color:     color,
		Note:      note,
		CreatedAt: m.now(),
	}
	m.session.Highlights = append(m.session.Highlights, highlight)
	m.logger.Debug("Highlight added", "highlight_id", highlight.ID, "document_id", m.session.DocumentID)
	m.emitter.Emit(domain.EventHighlightAdd, map[string]any{
		"highlight_id": highlight.ID,
		"color":        color,
		"start":        start,
		"end":          end,
	})
	return &highlight, nil
}

// RemoveHighlight removes the highlight if present; absent ids are a no-op.
// The removal event is emitted only when something was actually removed.
func (m *AnnotationManager) RemoveHighlight(highlightID string) {
	for i := range m.session.Highlights {
		if m.session.Highlights[i].ID != highlightID {
			continue
		}
		m.session.Highlights = append(m.session.Highlights[:i], m.session.Highlights[i+1:]...)
		m.emitter.Emit(domain.EventHighlightRemove, map[string]any{"highlight_id": highlightID})
		return
	}
}
