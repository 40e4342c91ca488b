package service

import (
	"sync"
	"testing"

	"instruction-viewer/internal/domain"
	"instruction-viewer/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*SessionManager, string, *[]domain.ViewerEvent) {
	t.Helper()

	var mu sync.Mutex
	events := []domain.ViewerEvent{}
	sink := func(event domain.ViewerEvent) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	}

	docs := NewDocumentService(nopLogger{})
	doc, err := docs.Register(&domain.Document{
		Title:   "Confined Space Entry",
		Content: "# Entry permit\nA permit is required.\n# Atmosphere testing\nTest before entry.",
	})
	require.NoError(t, err)

	manager := NewSessionManager(docs, sink, nopLogger{})
	t.Cleanup(manager.Shutdown)
	return manager, doc.ID, &events
}

func TestSessionManager_CreateAndSnapshot(t *testing.T) {
	manager, docID, events := newTestManager(t)

	id, state, err := manager.Create(docID, "user-7", 390)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "user-7", state.Session.UserID)
	assert.Equal(t, docID, state.Session.DocumentID)
	assert.Equal(t, domain.DeviceMobile, state.Device)
	assert.Equal(t, 1, manager.Count())

	require.Len(t, *events, 1)
	assert.Equal(t, domain.EventViewStart, (*events)[0].Type)
}

func TestSessionManager_CreateValidation(t *testing.T) {
	manager, docID, _ := newTestManager(t)

	_, _, err := manager.Create(docID, "", 0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, _, err = manager.Create("missing-doc", "user-7", 0)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestSessionManager_With(t *testing.T) {
	manager, docID, _ := newTestManager(t)

	id, _, err := manager.Create(docID, "user-7", 0)
	require.NoError(t, err)

	err = manager.With(id, func(e *engine.Engine) error {
		_, err := e.ToggleBookmark()
		return err
	})
	require.NoError(t, err)

	err = manager.With(id, func(e *engine.Engine) error {
		assert.True(t, e.Snapshot().Session.Bookmarked)
		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, manager.With("unknown", func(*engine.Engine) error { return nil }),
		domain.ErrSessionNotFound)
}

func TestSessionManager_SessionGetsNavigationFromContent(t *testing.T) {
	manager, docID, _ := newTestManager(t)

	id, _, err := manager.Create(docID, "user-7", 0)
	require.NoError(t, err)

	err = manager.With(id, func(e *engine.Engine) error {
		items := e.Navigation()
		require.Len(t, items, 2)
		assert.Equal(t, "Entry permit", items[0].Title)
		assert.Equal(t, "Atmosphere testing", items[1].Title)
		return nil
	})
	require.NoError(t, err)
}

func TestSessionManager_Dispose(t *testing.T) {
	manager, docID, events := newTestManager(t)

	id, _, err := manager.Create(docID, "user-7", 0)
	require.NoError(t, err)

	require.NoError(t, manager.Dispose(id))
	assert.Zero(t, manager.Count())

	last := (*events)[len(*events)-1]
	assert.Equal(t, domain.EventViewEnd, last.Type)

	// The handle is gone afterwards.
	assert.ErrorIs(t, manager.Dispose(id), domain.ErrSessionNotFound)
}

func TestHostedScroll_ConcurrentWriters(t *testing.T) {
	scroll := &hostedScroll{max: 10000}

	// The auto-scroll timer and the session's request goroutine both write
	// the port; it must serialize them itself.
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				scroll.ScrollBy(1)
				scroll.Position()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800.0, scroll.Position())
}

func TestHostedScroll_BoundsAndEnd(t *testing.T) {
	scroll := &hostedScroll{max: 100}

	assert.False(t, scroll.ScrollBy(60))
	assert.Equal(t, 60.0, scroll.Position())

	// Crossing the end clamps and reports end-of-content.
	assert.True(t, scroll.ScrollBy(60))
	assert.Equal(t, 100.0, scroll.Position())

	scroll.ScrollTo(-50)
	assert.Equal(t, 0.0, scroll.Position())
}
