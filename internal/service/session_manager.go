package service

import (
	"sync"

	"instruction-viewer/internal/domain"
	"instruction-viewer/internal/engine"

	"github.com/google/uuid"
)

// SessionManager owns the live engine instances of the host. The engine
// itself performs no locking, so the manager serializes all access to a given
// session behind a per-session mutex.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*sessionHandle

	documents *DocumentService
	sink      domain.EventSink
	logger    domain.Logger
}

type sessionHandle struct {
	mu     sync.Mutex
	engine *engine.Engine
}

// hostedScroll is the headless scroll port for server-hosted sessions: the
// remote UI owns the real viewport, so the host tracks a virtual position
// bounded by the content length. The auto-scroll timer advances the port from
// its own goroutine, so access is guarded.
type hostedScroll struct {
	mu  sync.Mutex
	pos float64
	max float64
}

func (s *hostedScroll) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *hostedScroll) ScrollTo(offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(offset)
}

func (s *hostedScroll) ScrollBy(delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(s.pos + delta)
	return s.pos >= s.max
}

func (s *hostedScroll) set(offset float64) {
	s.pos = offset
	if s.pos < 0 {
		s.pos = 0
	}
	if s.pos > s.max {
		s.pos = s.max
	}
}

// hostedFullscreen flips a flag; a headless host has no exclusive display
// mode to request, but honoring the intent keeps remote UIs consistent.
type hostedFullscreen struct{}

func (hostedFullscreen) Request() error                      { return nil }
func (hostedFullscreen) Exit() error                         { return nil }
func (hostedFullscreen) OnChange(func(bool)) (detach func()) { return func() {} }

// NewSessionManager creates an empty manager delivering engine events to sink.
func NewSessionManager(documents *DocumentService, sink domain.EventSink, logger domain.Logger) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*sessionHandle),
		documents: documents,
		sink:      sink,
		logger:    logger,
	}
}

// Create opens a new reading session for (documentID, userID) and returns the
// session handle id together with the initial state snapshot.
func (m *SessionManager) Create(documentID, userID string, viewportWidth int) (string, engine.State, error) {
	if userID == "" {
		return "", engine.State{}, &domain.ValidationError{Field: "user_id", Message: "user ID is required"}
	}
	doc, err := m.documents.Get(documentID)
	if err != nil {
		return "", engine.State{}, err
	}

	id := uuid.NewString()
	opts := engine.Options{
		SessionID:  id,
		Headings:   ExtractHeadings(doc.Content),
		Scroll:     &hostedScroll{max: float64(len(doc.Content))},
		Fullscreen: hostedFullscreen{},
		Logger:     m.logger,
	}
	if viewportWidth > 0 {
		opts.Viewport = staticViewport(viewportWidth)
	}

	eng := engine.New(doc, userID, m.sink, opts)

	m.mu.Lock()
	m.sessions[id] = &sessionHandle{engine: eng}
	m.mu.Unlock()

	m.logger.Info("Session created", "session_id", id, "document_id", documentID, "user_id", userID)
	return id, eng.Snapshot(), nil
}

// With runs fn against the session's engine while holding its mutex. All
// host-side engine access goes through here.
func (m *SessionManager) With(sessionID string, fn func(*engine.Engine) error) error {
	m.mu.RLock()
	handle, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	handle.mu.Lock()
	defer handle.mu.Unlock()
	return fn(handle.engine)
}

// Dispose ends the session and removes it from the manager. Disposing an
// unknown id fails with ErrSessionNotFound; the engine's own Dispose stays
// idempotent underneath.
func (m *SessionManager) Dispose(sessionID string) error {
	m.mu.Lock()
	handle, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	handle.mu.Lock()
	defer handle.mu.Unlock()
	handle.engine.Dispose()
	return nil
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown disposes every live session, releasing timers and listeners.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	handles := make([]*sessionHandle, 0, len(m.sessions))
	for id, handle := range m.sessions {
		handles = append(handles, handle)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, handle := range handles {
		handle.mu.Lock()
		handle.engine.Dispose()
		handle.mu.Unlock()
	}
}

// staticViewport reports a fixed width for device classification.
type staticViewport int

func (v staticViewport) Width() int { return int(v) }
