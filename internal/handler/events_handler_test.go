package handler

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"instruction-viewer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSSE(t *testing.T) {
	event := domain.ViewerEvent{
		Type:      domain.EventBookmarkAdd,
		Timestamp: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		UserID:    "user-1",
		SessionID: "session-1",
	}

	wire := formatSSE(event)
	assert.True(t, strings.HasPrefix(wire, "event: bookmark_add\ndata: "))
	assert.True(t, strings.HasSuffix(wire, "\n\n"))
	assert.Contains(t, wire, `"session_id":"session-1"`)
}

func TestEventStream(t *testing.T) {
	server, container := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Wait for the subscription before publishing.
	require.Eventually(t, func() bool {
		return container.Broadcaster.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	container.Broadcaster.Publish(domain.ViewerEvent{
		Type:      domain.EventSearch,
		SessionID: "session-9",
	})

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: search\n", line)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: "))
	assert.Contains(t, line, `"session_id":"session-9"`)
}
