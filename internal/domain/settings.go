package domain

// ViewerSettings is the per-session viewer configuration. A process-wide
// default is supplied at construction and overridden field-by-field through
// SettingsPatch.
type ViewerSettings struct {
	FontSize   int     `json:"font_size"`
	FontFamily string  `json:"font_family"`
	LineHeight float64 `json:"line_height"`
	Theme      string  `json:"theme"`

	AutoScroll      bool `json:"auto_scroll"`
	AutoScrollSpeed int  `json:"auto_scroll_speed"` // 1..10

	ShowProgress   bool `json:"show_progress"`
	ShowBookmarks  bool `json:"show_bookmarks"`
	ShowNotes      bool `json:"show_notes"`
	ShowHighlights bool `json:"show_highlights"`

	SpeechRate  float64 `json:"speech_rate"`  // 0.5..2.0
	SpeechPitch float64 `json:"speech_pitch"` // 0.5..2.0
}

// DefaultSettings returns the viewer defaults used when the host supplies none.
func DefaultSettings() ViewerSettings {
	return ViewerSettings{
		FontSize:        16,
		FontFamily:      "serif",
		LineHeight:      1.5,
		Theme:           "light",
		AutoScroll:      false,
		AutoScrollSpeed: 3,
		ShowProgress:    true,
		ShowBookmarks:   true,
		ShowNotes:       true,
		ShowHighlights:  true,
		SpeechRate:      1.0,
		SpeechPitch:     1.0,
	}
}

// SettingsPatch is a partial settings update; nil fields are left untouched.
type SettingsPatch struct {
	FontSize   *int     `json:"font_size,omitempty"`
	FontFamily *string  `json:"font_family,omitempty"`
	LineHeight *float64 `json:"line_height,omitempty"`
	Theme      *string  `json:"theme,omitempty"`

	AutoScroll      *bool `json:"auto_scroll,omitempty"`
	AutoScrollSpeed *int  `json:"auto_scroll_speed,omitempty"`

	ShowProgress   *bool `json:"show_progress,omitempty"`
	ShowBookmarks  *bool `json:"show_bookmarks,omitempty"`
	ShowNotes      *bool `json:"show_notes,omitempty"`
	ShowHighlights *bool `json:"show_highlights,omitempty"`

	SpeechRate  *float64 `json:"speech_rate,omitempty"`
	SpeechPitch *float64 `json:"speech_pitch,omitempty"`
}

// Apply overlays the patch onto s, clamping the numeric ranges that have
// documented bounds (speed 1-10, speech rate/pitch 0.5-2.0).
func (p *SettingsPatch) Apply(s *ViewerSettings) {
	if p == nil || s == nil {
		return
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.LineHeight != nil {
		s.LineHeight = *p.LineHeight
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AutoScroll != nil {
		s.AutoScroll = *p.AutoScroll
	}
	if p.AutoScrollSpeed != nil {
		s.AutoScrollSpeed = clampInt(*p.AutoScrollSpeed, 1, 10)
	}
	if p.ShowProgress != nil {
		s.ShowProgress = *p.ShowProgress
	}
	if p.ShowBookmarks != nil {
		s.ShowBookmarks = *p.ShowBookmarks
	}
	if p.ShowNotes != nil {
		s.ShowNotes = *p.ShowNotes
	}
	if p.ShowHighlights != nil {
		s.ShowHighlights = *p.ShowHighlights
	}
	if p.SpeechRate != nil {
		s.SpeechRate = clampFloat(*p.SpeechRate, 0.5, 2.0)
	}
	if p.SpeechPitch != nil {
		s.SpeechPitch = clampFloat(*p.SpeechPitch, 0.5, 2.0)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
