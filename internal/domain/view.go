package domain

// ViewName identifies one of the viewer's fixed views.
type ViewName string

const (
	ViewOverview    ViewName = "overview"
	ViewContent     ViewName = "content"
	ViewAttachments ViewName = "attachments"
	ViewMetadata    ViewName = "metadata"
	ViewNotes       ViewName = "notes"
)

// ViewOrder is the fixed swipe order of the viewer's views.
var ViewOrder = []ViewName{ViewOverview, ViewContent, ViewAttachments, ViewMetadata, ViewNotes}

// ValidView reports whether v names a known view.
func ValidView(v ViewName) bool {
	return viewIndex(v) >= 0
}

// NextView returns the view after v in swipe order. ok is false at the last
// view; there is no wraparound.
func NextView(v ViewName) (ViewName, bool) {
	i := viewIndex(v)
	if i < 0 || i == len(ViewOrder)-1 {
		return v, false
	}
	return ViewOrder[i+1], true
}

// PrevView returns the view before v in swipe order. ok is false at the first
// view.
func PrevView(v ViewName) (ViewName, bool) {
	i := viewIndex(v)
	if i <= 0 {
		return v, false
	}
	return ViewOrder[i-1], true
}

func viewIndex(v ViewName) int {
	for i, name := range ViewOrder {
		if name == v {
			return i
		}
	}
	return -1
}
