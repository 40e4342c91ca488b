package domain

import (
	"testing"
	"time"
)

// TestSettingsPatch_Apply tests the field-by-field overlay semantics:
// - nil fields leave the current value untouched
// - auto-scroll speed clamps into 1..10
// - speech rate and pitch clamp into 0.5..2.0
// - other fields are applied without validation
func TestSettingsPatch_Apply(t *testing.T) {
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }
	strp := func(v string) *string { return &v }
	boolp := func(v bool) *bool { return &v }

	tests := []struct {
		name  string
		patch SettingsPatch
		check func(t *testing.T, s ViewerSettings)
	}{
		{
			name:  "Empty patch changes nothing",
			patch: SettingsPatch{},
			check: func(t *testing.T, s ViewerSettings) {
				if s != DefaultSettings() {
					t.Errorf("settings changed by empty patch: %+v", s)
				}
			},
		},
		{
			name:  "Speed clamps high",
			patch: SettingsPatch{AutoScrollSpeed: intp(99)},
			check: func(t *testing.T, s ViewerSettings) {
				if s.AutoScrollSpeed != 10 {
					t.Errorf("AutoScrollSpeed = %d, want 10", s.AutoScrollSpeed)
				}
			},
		},
		{
			name:  "Speed clamps low",
			patch: SettingsPatch{AutoScrollSpeed: intp(0)},
			check: func(t *testing.T, s ViewerSettings) {
				if s.AutoScrollSpeed != 1 {
					t.Errorf("AutoScrollSpeed = %d, want 1", s.AutoScrollSpeed)
				}
			},
		},
		{
			name:  "Speech rate and pitch clamp",
			patch: SettingsPatch{SpeechRate: floatp(3.5), SpeechPitch: floatp(0.1)},
			check: func(t *testing.T, s ViewerSettings) {
				if s.SpeechRate != 2.0 {
					t.Errorf("SpeechRate = %v, want 2.0", s.SpeechRate)
				}
				if s.SpeechPitch != 0.5 {
					t.Errorf("SpeechPitch = %v, want 0.5", s.SpeechPitch)
				}
			},
		},
		{
			name: "Partial overlay keeps other fields",
			patch: SettingsPatch{
				Theme:    strp("dark"),
				FontSize: intp(22),
			},
			check: func(t *testing.T, s ViewerSettings) {
				if s.Theme != "dark" || s.FontSize != 22 {
					t.Errorf("patched fields not applied: %+v", s)
				}
				if s.FontFamily != DefaultSettings().FontFamily {
					t.Errorf("FontFamily changed unexpectedly: %q", s.FontFamily)
				}
			},
		},
		{
			name:  "Visibility toggles",
			patch: SettingsPatch{ShowHighlights: boolp(false), ShowNotes: boolp(false)},
			check: func(t *testing.T, s ViewerSettings) {
				if s.ShowHighlights || s.ShowNotes {
					t.Errorf("visibility toggles not applied: %+v", s)
				}
				if !s.ShowProgress {
					t.Error("ShowProgress changed unexpectedly")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.patch.Apply(&settings)
			tt.check(t, settings)
		})
	}
}

func TestValidHighlightColor(t *testing.T) {
	for _, c := range HighlightColors {
		if !ValidHighlightColor(c) {
			t.Errorf("ValidHighlightColor(%q) = false, want true", c)
		}
	}
	if ValidHighlightColor("crimson") {
		t.Error(`ValidHighlightColor("crimson") = true, want false`)
	}
}

func TestReadingSession_Clone(t *testing.T) {
	session := NewReadingSession("doc-1", "user-1", time.Now())
	session.Notes = append(session.Notes, ReadingNote{ID: "n1", Content: "original"})

	clone := session.Clone()
	clone.Notes[0].Content = "mutated"
	clone.ReadingProgress = 80

	if session.Notes[0].Content != "original" {
		t.Error("Clone shares note storage with the original session")
	}
	if session.ReadingProgress != 0 {
		t.Error("Clone shares scalar state with the original session")
	}
}
