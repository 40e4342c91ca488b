package engine

import (
	"fmt"

	"instruction-viewer/internal/domain"
)

// BuildNavigation turns the ordered heading tuples extracted from the rendered
// document into the flat jump-to outline. Level is carried as indentation
// metadata for the consumer, not as a tree edge, and is clamped into 1..6.
//
// Documents are immutable once loaded, so the outline is rebuilt wholesale
// whenever content changes; there is no incremental update path.
func BuildNavigation(headings []domain.Heading) []domain.NavigationItem {
	items := make([]domain.NavigationItem, 0, len(headings))
	for i, h := range headings {
		level := h.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		items = append(items, domain.NavigationItem{
			ID:       fmt.Sprintf("nav-%d", i),
			Title:    h.Title,
			Level:    level,
			Position: h.Position,
		})
	}
	return items
}
