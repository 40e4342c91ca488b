package domain

import "time"

// HighlightColors is the fixed set of colors a highlight may use. The first
// entry is the default when a caller does not pick one.
var HighlightColors = []string{"yellow", "green", "blue", "pink", "orange"}

// ValidHighlightColor reports whether color belongs to the enumerated set.
func ValidHighlightColor(color string) bool {
	for _, c := range HighlightColors {
		if c == color {
			return true
		}
	}
	return false
}

// ReadingNote is a free-text note a user attached to a reading session.
type ReadingNote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Position  float64   `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Highlight is a colored span over a fixed text range, optionally annotated.
// Start and End are byte offsets into the document text; Start < End always.
type Highlight struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Start     int       `json:"start_position"`
	End       int       `json:"end_position"`
	Color     string    `json:"color"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadingSession is the per-(document, user) reading state. It is exclusively
// owned by one engine instance; all mutation goes through engine operations.
type ReadingSession struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`

	StartTime    time.Time `json:"start_time"`
	LastReadTime time.Time `json:"last_read_time"`

	// ReadingProgress is a percentage in [0, 100]. It tracks the current
	// scroll ratio, so it may decrease when the user scrolls back.
	ReadingProgress  float64 `json:"reading_progress"`
	LastReadPosition float64 `json:"last_read_position"`

	Bookmarked bool          `json:"bookmarked"`
	Notes      []ReadingNote `json:"notes"`
	Highlights []Highlight   `json:"highlights"`

	// TimeSpent is cumulative seconds spent in the session; it never decreases.
	TimeSpent int64 `json:"time_spent"`

	// Completed latches true once ReadingProgress reaches 100.
	Completed bool `json:"completed"`
}

// NewReadingSession creates a fresh session for a (document, user) pairing.
func NewReadingSession(documentID, userID string, now time.Time) *ReadingSession {
	return &ReadingSession{
		DocumentID:   documentID,
		UserID:       userID,
		StartTime:    now,
		LastReadTime: now,
		Notes:        []ReadingNote{},
		Highlights:   []Highlight{},
	}
}

// Clone returns a deep copy safe to hand to callers as a snapshot.
func (s *ReadingSession) Clone() *ReadingSession {
	cp := *s
	cp.Notes = make([]ReadingNote, len(s.Notes))
	copy(cp.Notes, s.Notes)
	cp.Highlights = make([]Highlight, len(s.Highlights))
	copy(cp.Highlights, s.Highlights)
	return &cp
}
