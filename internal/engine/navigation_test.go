package engine

import (
	"testing"

	"instruction-viewer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNavigation(t *testing.T) {
	headings := []domain.Heading{
		{Level: 1, Title: "Overview", Position: 0},
		{Level: 2, Title: "Scope", Position: 120},
		{Level: 2, Title: "Responsibilities", Position: 480},
		{Level: 3, Title: "Supervisors", Position: 610},
	}

	items := BuildNavigation(headings)
	require.Len(t, items, 4)

	// The outline stays flat and ordered; level is indentation metadata.
	assert.Equal(t, "Overview", items[0].Title)
	assert.Equal(t, 1, items[0].Level)
	assert.Equal(t, "Supervisors", items[3].Title)
	assert.Equal(t, 3, items[3].Level)
	assert.Equal(t, 610, items[3].Position)

	// IDs are stable per rebuild.
	assert.Equal(t, "nav-0", items[0].ID)
	assert.Equal(t, "nav-3", items[3].ID)
}

func TestBuildNavigation_ClampsLevels(t *testing.T) {
	items := BuildNavigation([]domain.Heading{
		{Level: 0, Title: "Too shallow", Position: 0},
		{Level: 9, Title: "Too deep", Position: 10},
	})
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Level)
	assert.Equal(t, 6, items[1].Level)
}

func TestBuildNavigation_Empty(t *testing.T) {
	assert.Empty(t, BuildNavigation(nil))
}
