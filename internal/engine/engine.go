// Package engine implements the reading-session engine backing the
// instruction viewer: a per-user, per-document state machine tracking scroll
// progress, bookmarks, notes, highlights, full-text search, auto-scroll,
// gesture navigation, fullscreen mode, and the analytics event stream.
//
// The engine renders nothing and performs no network I/O. Platform behaviors
// (scroll, fullscreen, touch, text selection, viewport size) are injected as
// capability ports so a non-browser host can supply equivalents.
//
// An engine instance exclusively owns its session and performs no internal
// locking: callers in a multi-threaded host must serialize access to a given
// session. The auto-scroll timer is the only source of asynchronous re-entry,
// and it only ever touches the scroll port.
package engine

import (
	"sync"
	"time"

	"instruction-viewer/internal/domain"

	"github.com/google/uuid"
)

// Zoom bounds in percent.
const (
	minZoom     = 50
	maxZoom     = 200
	defaultZoom = 100
)

// Options carries the optional collaborators for a new engine.
type Options struct {
	// SessionID is the host's correlation key for emitted events. A fresh
	// id is generated when empty.
	SessionID string
	// Settings overrides the process-wide viewer defaults.
	Settings *domain.ViewerSettings
	// Headings seeds the navigation outline, as extracted from the
	// rendered document by the hosting UI.
	Headings []domain.Heading

	Scroll     domain.ScrollPort
	Fullscreen domain.FullscreenPort
	Selection  domain.SelectionPort
	Viewport   domain.ViewportPort

	Logger domain.Logger
	// Now overrides the wall clock, for tests.
	Now func() time.Time
	// TickInterval overrides the auto-scroll tick period.
	TickInterval time.Duration
}

// Engine is the single source of truth for one reading session. All mutating
// operations go through it, every accepted mutation emits exactly one viewer
// event before the operation returns, and no failure leaves the session
// half-updated.
type Engine struct {
	doc     *domain.Document
	session *domain.ReadingSession

	settings    domain.ViewerSettings
	device      domain.DeviceClass
	currentView domain.ViewName
	zoomLevel   int
	rotation    int

	navigation    []domain.NavigationItem
	searchResults []domain.SearchResult
	searchCursor  int

	disposed bool

	emitter     *AnalyticsEmitter
	annotations *AnnotationManager
	autoScroll  *AutoScrollController
	fullscreen  *FullscreenController

	scroll    domain.ScrollPort
	selection domain.SelectionPort
	logger    domain.Logger
	now       func() time.Time
}

// State is an immutable snapshot of the engine's observable state.
type State struct {
	Session     *domain.ReadingSession `json:"session"`
	Settings    domain.ViewerSettings  `json:"settings"`
	CurrentView domain.ViewName        `json:"current_view"`
	ZoomLevel   int                    `json:"zoom_level"`
	Rotation    int                    `json:"rotation"`
	Fullscreen  bool                   `json:"fullscreen"`
	Device      domain.DeviceClass     `json:"device"`
	AutoScroll  bool                   `json:"auto_scroll_running"`
}

// New initializes a fresh reading session for (document, user) and emits
// view_start. A document without extractable text falls back to an
// empty-content session rather than failing.
func New(doc *domain.Document, userID string, sink domain.EventSink, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	settings := domain.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}

	device := domain.DeviceDesktop
	if opts.Viewport != nil {
		device = domain.ClassifyDevice(opts.Viewport.Width())
	}

	scroll := opts.Scroll
	if scroll == nil {
		scroll = &detachedScroll{}
	}

	e := &Engine{
		doc:           doc,
		session:       domain.NewReadingSession(doc.ID, userID, now()),
		settings:      settings,
		device:        device,
		currentView:   domain.ViewContent,
		zoomLevel:     defaultZoom,
		navigation:    BuildNavigation(opts.Headings),
		searchResults: []domain.SearchResult{},
		scroll:        scroll,
		selection:     opts.Selection,
		logger:        logger,
		now:           now,
	}

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	e.emitter = NewAnalyticsEmitter(sink, userID, sessionID, now)
	e.annotations = NewAnnotationManager(e.session, e.emitter, logger, now)
	e.fullscreen = NewFullscreenController(opts.Fullscreen, e.emitter, logger)
	e.autoScroll = NewAutoScrollController(opts.TickInterval, func(step float64) bool {
		return e.scroll.ScrollBy(step)
	})

	if !doc.HasContent() {
		logger.Warn("Document has no extractable text, starting empty-content session", "document_id", doc.ID)
	}
	logger.Info("Reading session started", "document_id", doc.ID, "user_id", userID, "device", device)
	e.emitter.Emit(domain.EventViewStart, map[string]any{
		"document_id": doc.ID,
		"device":      string(device),
	})
	return e
}

// UpdateProgress recomputes reading progress from the current scroll geometry
// and returns the resulting percentage. Content that fits entirely in the
// viewport counts as fully read.
func (e *Engine) UpdateProgress(scrollOffset, scrollHeight, viewportHeight float64) (float64, error) {
	if e.disposed {
		return 0, domain.ErrSessionDisposed
	}

	progress := 100.0
	if denom := scrollHeight - viewportHeight; denom > 0 {
		progress = scrollOffset / denom * 100
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
	}

	e.session.ReadingProgress = progress
	e.session.LastReadPosition = scrollOffset
	e.session.LastReadTime = e.now()
	e.touchTimeSpent()

	data := map[string]any{"progress": progress}
	if progress >= 100 && !e.session.Completed {
		// Completion latches; re-reaching 100 later only refreshes the
		// timestamp.
		e.session.Completed = true
		data["completed"] = true
	}
	e.emitter.Emit(domain.EventProgressUpdate, data)
	return progress, nil
}

// ToggleBookmark flips the session bookmark and returns the resulting value.
func (e *Engine) ToggleBookmark() (bool, error) {
	if e.disposed {
		return false, domain.ErrSessionDisposed
	}
	return e.annotations.ToggleBookmark(), nil
}

// AddNote appends a note at the given scroll position.
func (e *Engine) AddNote(content string, position float64) (*domain.ReadingNote, error) {
	if e.disposed {
		return nil, domain.ErrSessionDisposed
	}
	return e.annotations.AddNote(content, position)
}

// UpdateNote replaces the content of an existing note.
func (e *Engine) UpdateNote(noteID, content string) (*domain.ReadingNote, error) {
	if e.disposed {
		return nil, domain.ErrSessionDisposed
	}
	return e.annotations.UpdateNote(noteID, content)
}

// DeleteNote removes a note; missing ids are a no-op.
func (e *Engine) DeleteNote(noteID string) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	e.annotations.DeleteNote(noteID)
	return nil
}

// AddHighlight records a colored span over [start, end).
func (e *Engine) AddHighlight(text string, start, end int, color, note string) (*domain.Highlight, error) {
	if e.disposed {
		return nil, domain.ErrSessionDisposed
	}
	return e.annotations.AddHighlight(text, start, end, color, note)
}

// RemoveHighlight removes a highlight; missing ids are a no-op.
func (e *Engine) RemoveHighlight(highlightID string) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	e.annotations.RemoveHighlight(highlightID)
	return nil
}

// HighlightSelection records a highlight over the host's current text
// selection.
func (e *Engine) HighlightSelection(color string) (*domain.Highlight, error) {
	if e.disposed {
		return nil, domain.ErrSessionDisposed
	}
	if e.selection == nil {
		return nil, domain.ErrNoSelection
	}
	text, start, end, ok := e.selection.Selection()
	if !ok {
		return nil, domain.ErrNoSelection
	}
	return e.annotations.AddHighlight(text, start, end, color, "")
}

// UpdateSettings overlays a partial settings update. Disabling auto-scroll
// also stops a running auto-scroll, per the orchestration contract.
func (e *Engine) UpdateSettings(patch *domain.SettingsPatch) (domain.ViewerSettings, error) {
	if e.disposed {
		return e.settings, domain.ErrSessionDisposed
	}
	patch.Apply(&e.settings)
	if !e.settings.AutoScroll {
		e.autoScroll.Stop()
	}
	e.emitter.Emit(domain.EventSettingsUpdate, map[string]any{"settings": e.settings})
	return e.settings, nil
}

// NavigateToView switches the current view. Any explicit navigation stops a
// running auto-scroll.
func (e *Engine) NavigateToView(view domain.ViewName) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	if !domain.ValidView(view) {
		return domain.ErrUnknownView
	}
	e.autoScroll.Stop()
	from := e.currentView
	e.currentView = view
	e.emitter.Emit(domain.EventPageTurn, map[string]any{
		"from": string(from),
		"to":   string(view),
	})
	return nil
}

// NavigateToPosition jumps the viewport to an absolute offset.
func (e *Engine) NavigateToPosition(offset float64) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	if offset < 0 {
		offset = 0
	}
	e.autoScroll.Stop()
	e.scroll.ScrollTo(offset)
	e.session.LastReadPosition = offset
	e.session.LastReadTime = e.now()
	e.emitter.Emit(domain.EventPageTurn, map[string]any{"position": offset})
	return nil
}

// Search scans the document content and replaces the current result set,
// resetting the cursor to the first match. Searching is stateless per call;
// the engine keeps the cursor so next/previous navigation does not re-scan.
func (e *Engine) Search(query string) ([]domain.SearchResult, error) {
	if e.disposed {
		return nil, domain.ErrSessionDisposed
	}
	e.searchResults = SearchDocument(e.doc.Content, query)
	e.searchCursor = 0
	e.emitter.Emit(domain.EventSearch, map[string]any{
		"query":   query,
		"matches": len(e.searchResults),
	})
	return e.SearchResults(), nil
}

// NavigateToSearchResult moves the search cursor and jumps to the match. An
// out-of-range index clamps rather than failing; with no results it is a
// no-op.
func (e *Engine) NavigateToSearchResult(index int) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	if len(e.searchResults) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index > len(e.searchResults)-1 {
		index = len(e.searchResults) - 1
	}
	e.autoScroll.Stop()
	e.searchCursor = index
	result := e.searchResults[index]
	e.scroll.ScrollTo(float64(result.Position))
	e.session.LastReadPosition = float64(result.Position)
	e.session.LastReadTime = e.now()
	e.emitter.Emit(domain.EventPageTurn, map[string]any{
		"search_index": index,
		"position":     result.Position,
	})
	return nil
}

// SetZoomLevel sets the zoom percentage, clamped to 50-200.
func (e *Engine) SetZoomLevel(percent int) (int, error) {
	if e.disposed {
		return e.zoomLevel, domain.ErrSessionDisposed
	}
	if percent < minZoom {
		percent = minZoom
	}
	if percent > maxZoom {
		percent = maxZoom
	}
	e.zoomLevel = percent
	e.emitter.Emit(domain.EventZoom, map[string]any{"level": percent})
	return e.zoomLevel, nil
}

// Rotate adds a quarter turn and returns the resulting rotation in degrees.
func (e *Engine) Rotate() (int, error) {
	if e.disposed {
		return e.rotation, domain.ErrSessionDisposed
	}
	e.rotation = (e.rotation + 90) % 360
	e.emitter.Emit(domain.EventRotate, map[string]any{"rotation": e.rotation})
	return e.rotation, nil
}

// ToggleFullscreen requests the platform enter or exit exclusive mode and
// returns the resulting (intended) state.
func (e *Engine) ToggleFullscreen() (bool, error) {
	if e.disposed {
		return e.fullscreen.Active(), domain.ErrSessionDisposed
	}
	return e.fullscreen.Toggle(), nil
}

// StartAutoScroll begins timer-driven scrolling at the configured speed.
// Starting while already running is idempotent and emits nothing.
func (e *Engine) StartAutoScroll() error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	if e.autoScroll.Running() {
		return nil
	}
	e.autoScroll.Start(e.settings.AutoScrollSpeed)
	e.emitter.Emit(domain.EventAutoScrollStart, map[string]any{"speed": e.settings.AutoScrollSpeed})
	return nil
}

// StopAutoScroll cancels timer-driven scrolling. Stopping while already
// stopped is a no-op and emits nothing.
func (e *Engine) StopAutoScroll() error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	if !e.autoScroll.Running() {
		return nil
	}
	e.autoScroll.Stop()
	e.emitter.Emit(domain.EventAutoScrollStop, nil)
	return nil
}

// HandleGesture classifies a touch start/end delta and applies the resulting
// navigation or scroll command. Sub-threshold movement, non-mobile devices,
// and view-boundary swipes produce no action.
func (e *Engine) HandleGesture(start, end TouchPoint) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	switch RouteGesture(start, end, e.device) {
	case GestureNextView:
		if next, ok := domain.NextView(e.currentView); ok {
			return e.NavigateToView(next)
		}
	case GesturePrevView:
		if prev, ok := domain.PrevView(e.currentView); ok {
			return e.NavigateToView(prev)
		}
	case GestureScrollForward:
		e.scroll.ScrollBy(gestureScrollStep)
	case GestureScrollBack:
		e.scroll.ScrollBy(-gestureScrollStep)
	}
	return nil
}

// Share records a share of the document to the given target.
func (e *Engine) Share(target string) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	e.emitter.Emit(domain.EventShare, map[string]any{"target": target})
	return nil
}

// Export records an export of the document content in the given format.
func (e *Engine) Export(format string) error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	e.emitter.Emit(domain.EventExport, map[string]any{"format": format})
	return nil
}

// Print records a print of the document.
func (e *Engine) Print() error {
	if e.disposed {
		return domain.ErrSessionDisposed
	}
	e.emitter.Emit(domain.EventPrint, nil)
	return nil
}

// RebuildNavigation replaces the outline from freshly extracted headings.
func (e *Engine) RebuildNavigation(headings []domain.Heading) {
	e.navigation = BuildNavigation(headings)
}

// Dispose ends the session: stops auto-scroll, detaches platform listeners,
// and emits view_end with the total time spent. Calling Dispose more than
// once is a no-op; a second view_end is never emitted.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.autoScroll.Stop()
	e.fullscreen.Close()
	e.touchTimeSpent()
	e.logger.Info("Reading session ended", "document_id", e.doc.ID, "time_spent", e.session.TimeSpent)
	e.emitter.Emit(domain.EventViewEnd, map[string]any{"time_spent": e.session.TimeSpent})
}

// Snapshot returns an immutable copy of the engine's observable state.
func (e *Engine) Snapshot() State {
	return State{
		Session:     e.session.Clone(),
		Settings:    e.settings,
		CurrentView: e.currentView,
		ZoomLevel:   e.zoomLevel,
		Rotation:    e.rotation,
		Fullscreen:  e.fullscreen.Active(),
		Device:      e.device,
		AutoScroll:  e.autoScroll.Running(),
	}
}

// Navigation returns a copy of the current jump-to outline.
func (e *Engine) Navigation() []domain.NavigationItem {
	items := make([]domain.NavigationItem, len(e.navigation))
	copy(items, e.navigation)
	return items
}

// SearchResults returns a copy of the current result set.
func (e *Engine) SearchResults() []domain.SearchResult {
	results := make([]domain.SearchResult, len(e.searchResults))
	copy(results, e.searchResults)
	return results
}

// SearchCursor returns the index of the current search result.
func (e *Engine) SearchCursor() int {
	return e.searchCursor
}

// Settings returns the current viewer settings.
func (e *Engine) Settings() domain.ViewerSettings {
	return e.settings
}

// Device returns the device category the session was classified under.
func (e *Engine) Device() domain.DeviceClass {
	return e.device
}

// Disposed reports whether the session has ended.
func (e *Engine) Disposed() bool {
	return e.disposed
}

// touchTimeSpent refreshes cumulative time spent; it never decreases.
func (e *Engine) touchTimeSpent() {
	elapsed := int64(e.now().Sub(e.session.StartTime).Seconds())
	if elapsed > e.session.TimeSpent {
		e.session.TimeSpent = elapsed
	}
}

// detachedScroll is the fallback scroll port for hosts that do not supply
// one. It tracks a virtual position with no content end. The auto-scroll
// timer advances the port from its own goroutine, so access is guarded.
type detachedScroll struct {
	mu  sync.Mutex
	pos float64
}

func (s *detachedScroll) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *detachedScroll) ScrollTo(offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = offset
}

func (s *detachedScroll) ScrollBy(delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos += delta
	if s.pos < 0 {
		s.pos = 0
	}
	return false
}

// nopLogger discards all log output.
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}
