package engine

import (
	"testing"
	"time"

	"instruction-viewer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder captures everything the engine emits, in order.
type eventRecorder struct {
	events []domain.ViewerEvent
}

func (r *eventRecorder) sink() domain.EventSink {
	return func(event domain.ViewerEvent) {
		r.events = append(r.events, event)
	}
}

func (r *eventRecorder) types() []domain.EventType {
	types := make([]domain.EventType, len(r.events))
	for i, event := range r.events {
		types[i] = event.Type
	}
	return types
}

func (r *eventRecorder) count(eventType domain.EventType) int {
	n := 0
	for _, event := range r.events {
		if event.Type == eventType {
			n++
		}
	}
	return n
}

// fakeClock advances by a fixed step on every read so time-spent math is
// deterministic.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func testDocument() *domain.Document {
	return &domain.Document{
		ID:      "doc-1",
		Title:   "Lifting Operations",
		Content: "# Overview\nSafety rules apply. Safety first.\n# Procedure\nFollow the checklist.",
	}
}

func newTestEngine(t *testing.T) (*Engine, *eventRecorder) {
	t.Helper()
	recorder := &eventRecorder{}
	eng := New(testDocument(), "user-1", recorder.sink(), Options{})
	t.Cleanup(eng.Dispose)
	return eng, recorder
}

func TestNew_EmitsViewStart(t *testing.T) {
	recorder := &eventRecorder{}
	eng := New(testDocument(), "user-1", recorder.sink(), Options{})
	defer eng.Dispose()

	require.Len(t, recorder.events, 1)
	event := recorder.events[0]
	assert.Equal(t, domain.EventViewStart, event.Type)
	assert.Equal(t, "user-1", event.UserID)
	assert.NotEmpty(t, event.SessionID)

	state := eng.Snapshot()
	assert.Zero(t, state.Session.ReadingProgress)
	assert.False(t, state.Session.Bookmarked)
	assert.Empty(t, state.Session.Notes)
	assert.Empty(t, state.Session.Highlights)
	assert.Equal(t, domain.ViewContent, state.CurrentView)
	assert.Equal(t, 100, state.ZoomLevel)
}

func TestNew_UsesConfiguredSessionID(t *testing.T) {
	recorder := &eventRecorder{}
	eng := New(testDocument(), "user-1", recorder.sink(), Options{SessionID: "session-42"})
	defer eng.Dispose()

	require.NotEmpty(t, recorder.events)
	assert.Equal(t, "session-42", recorder.events[0].SessionID)
}

func TestNew_EmptyContentFallsBack(t *testing.T) {
	recorder := &eventRecorder{}
	eng := New(&domain.Document{ID: "doc-empty", Title: "Empty"}, "user-1", recorder.sink(), Options{})
	defer eng.Dispose()

	// An empty-content session is not an error; it just has nothing to search.
	results, err := eng.Search("anything")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpdateProgress(t *testing.T) {
	tests := []struct {
		name           string
		scrollOffset   float64
		scrollHeight   float64
		viewportHeight float64
		wantProgress   float64
	}{
		{
			name:         "halfway",
			scrollOffset: 450, scrollHeight: 1000, viewportHeight: 100,
			wantProgress: 50,
		},
		{
			name:         "top of document",
			scrollOffset: 0, scrollHeight: 1000, viewportHeight: 100,
			wantProgress: 0,
		},
		{
			name:         "bottom of document",
			scrollOffset: 900, scrollHeight: 1000, viewportHeight: 100,
			wantProgress: 100,
		},
		{
			// Overscroll (rubber-banding) clamps instead of exceeding 100.
			name:         "overscroll clamps high",
			scrollOffset: 5000, scrollHeight: 1000, viewportHeight: 100,
			wantProgress: 100,
		},
		{
			name:         "negative offset clamps low",
			scrollOffset: -20, scrollHeight: 1000, viewportHeight: 100,
			wantProgress: 0,
		},
		{
			// Content that fits entirely in the viewport is fully read,
			// not a division fault.
			name:         "content fits viewport",
			scrollOffset: 0, scrollHeight: 600, viewportHeight: 600,
			wantProgress: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, _ := newTestEngine(t)
			progress, err := eng.UpdateProgress(tt.scrollOffset, tt.scrollHeight, tt.viewportHeight)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProgress, progress)

			state := eng.Snapshot()
			assert.Equal(t, tt.wantProgress, state.Session.ReadingProgress)
			assert.GreaterOrEqual(t, state.Session.ReadingProgress, 0.0)
			assert.LessOrEqual(t, state.Session.ReadingProgress, 100.0)
		})
	}
}

func TestUpdateProgress_CompletionLatches(t *testing.T) {
	eng, recorder := newTestEngine(t)

	_, err := eng.UpdateProgress(900, 1000, 100)
	require.NoError(t, err)
	assert.True(t, eng.Snapshot().Session.Completed)

	// Scrolling back does not un-complete the session.
	_, err = eng.UpdateProgress(100, 1000, 100)
	require.NoError(t, err)
	state := eng.Snapshot()
	assert.True(t, state.Session.Completed)
	assert.InDelta(t, 11.11, state.Session.ReadingProgress, 0.01)

	// Re-reaching 100 does not re-trigger the completion flag in the event
	// payload.
	_, err = eng.UpdateProgress(900, 1000, 100)
	require.NoError(t, err)

	completions := 0
	for _, event := range recorder.events {
		if event.Type == domain.EventProgressUpdate {
			if completed, ok := event.Data["completed"].(bool); ok && completed {
				completions++
			}
		}
	}
	assert.Equal(t, 1, completions)
}

func TestToggleBookmark_PairRestoresOriginal(t *testing.T) {
	eng, recorder := newTestEngine(t)

	bookmarked, err := eng.ToggleBookmark()
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = eng.ToggleBookmark()
	require.NoError(t, err)
	assert.False(t, bookmarked)

	assert.Equal(t, 1, recorder.count(domain.EventBookmarkAdd))
	assert.Equal(t, 1, recorder.count(domain.EventBookmarkRemove))
}

func TestSetZoomLevel_Clamps(t *testing.T) {
	eng, _ := newTestEngine(t)

	level, err := eng.SetZoomLevel(500)
	require.NoError(t, err)
	assert.Equal(t, 200, level)

	level, err = eng.SetZoomLevel(10)
	require.NoError(t, err)
	assert.Equal(t, 50, level)

	level, err = eng.SetZoomLevel(125)
	require.NoError(t, err)
	assert.Equal(t, 125, level)
}

func TestRotate_FourTurnsReturnToZero(t *testing.T) {
	eng, _ := newTestEngine(t)

	var rotation int
	var err error
	for i := 0; i < 4; i++ {
		rotation, err = eng.Rotate()
		require.NoError(t, err)
	}
	assert.Equal(t, 0, rotation)
}

func TestNavigateToView(t *testing.T) {
	eng, recorder := newTestEngine(t)

	require.NoError(t, eng.NavigateToView(domain.ViewNotes))
	assert.Equal(t, domain.ViewNotes, eng.Snapshot().CurrentView)

	err := eng.NavigateToView("settings")
	assert.ErrorIs(t, err, domain.ErrUnknownView)
	// The failed call left state untouched and emitted nothing.
	assert.Equal(t, domain.ViewNotes, eng.Snapshot().CurrentView)
	assert.Equal(t, 1, recorder.count(domain.EventPageTurn))
}

func TestSearch_CursorNavigation(t *testing.T) {
	eng, _ := newTestEngine(t)

	results, err := eng.Search("Safety")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, eng.SearchCursor())

	require.NoError(t, eng.NavigateToSearchResult(1))
	assert.Equal(t, 1, eng.SearchCursor())

	// Out-of-range indexes clamp instead of failing.
	require.NoError(t, eng.NavigateToSearchResult(99))
	assert.Equal(t, 1, eng.SearchCursor())
	require.NoError(t, eng.NavigateToSearchResult(-5))
	assert.Equal(t, 0, eng.SearchCursor())

	// A new search resets the cursor.
	_, err = eng.Search("checklist")
	require.NoError(t, err)
	assert.Equal(t, 0, eng.SearchCursor())
}

func TestNavigateToSearchResult_NoResultsIsNoop(t *testing.T) {
	eng, recorder := newTestEngine(t)

	_, err := eng.Search("no such phrase")
	require.NoError(t, err)
	before := len(recorder.events)

	require.NoError(t, eng.NavigateToSearchResult(0))
	assert.Len(t, recorder.events, before)
}

func TestUpdateSettings_PartialOverlayAndClamping(t *testing.T) {
	eng, _ := newTestEngine(t)

	fontSize := 20
	speed := 25
	rate := 9.0
	settings, err := eng.UpdateSettings(&domain.SettingsPatch{
		FontSize:        &fontSize,
		AutoScrollSpeed: &speed,
		SpeechRate:      &rate,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, settings.FontSize)
	assert.Equal(t, 10, settings.AutoScrollSpeed, "speed clamps to 1-10")
	assert.Equal(t, 2.0, settings.SpeechRate, "rate clamps to 0.5-2.0")
	// Untouched fields keep their defaults.
	assert.Equal(t, "serif", settings.FontFamily)
	assert.Equal(t, "light", settings.Theme)
}

func TestDispose_IdempotentSingleViewEnd(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	recorder := &eventRecorder{}
	eng := New(testDocument(), "user-1", recorder.sink(), Options{Now: clock.now})

	clock.advance(95 * time.Second)
	eng.Dispose()
	eng.Dispose()
	eng.Dispose()

	require.Equal(t, 1, recorder.count(domain.EventViewEnd))
	last := recorder.events[len(recorder.events)-1]
	assert.Equal(t, int64(95), last.Data["time_spent"])
}

func TestDispose_RejectsFurtherMutations(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Dispose()

	_, err := eng.AddNote("late note", 0)
	assert.ErrorIs(t, err, domain.ErrSessionDisposed)
	_, err = eng.UpdateProgress(10, 100, 10)
	assert.ErrorIs(t, err, domain.ErrSessionDisposed)
	_, err = eng.Rotate()
	assert.ErrorIs(t, err, domain.ErrSessionDisposed)
}

func TestEventOrderMatchesMutationOrder(t *testing.T) {
	eng, recorder := newTestEngine(t)

	_, err := eng.UpdateProgress(100, 1000, 100)
	require.NoError(t, err)
	_, err = eng.ToggleBookmark()
	require.NoError(t, err)
	_, err = eng.Search("Safety")
	require.NoError(t, err)
	_, err = eng.Rotate()
	require.NoError(t, err)

	assert.Equal(t, []domain.EventType{
		domain.EventViewStart,
		domain.EventProgressUpdate,
		domain.EventBookmarkAdd,
		domain.EventSearch,
		domain.EventRotate,
	}, recorder.types())
}

func TestSnapshot_IsDetachedCopy(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.AddNote("first", 10)
	require.NoError(t, err)

	state := eng.Snapshot()
	state.Session.Notes[0].Content = "mutated by caller"
	state.Session.ReadingProgress = 99

	fresh := eng.Snapshot()
	assert.Equal(t, "first", fresh.Session.Notes[0].Content)
	assert.Zero(t, fresh.Session.ReadingProgress)
}

func TestHighlightSelection(t *testing.T) {
	recorder := &eventRecorder{}
	eng := New(testDocument(), "user-1", recorder.sink(), Options{
		Selection: staticSelection{text: "Safety rules", start: 11, end: 23},
	})
	defer eng.Dispose()

	highlight, err := eng.HighlightSelection("green")
	require.NoError(t, err)
	assert.Equal(t, "Safety rules", highlight.Text)
	assert.Equal(t, "green", highlight.Color)
}

func TestHighlightSelection_NoSelection(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, err := eng.HighlightSelection("green")
	assert.ErrorIs(t, err, domain.ErrNoSelection)
}

type staticSelection struct {
	text       string
	start, end int
}

func (s staticSelection) Selection() (string, int, int, bool) {
	return s.text, s.start, s.end, true
}
