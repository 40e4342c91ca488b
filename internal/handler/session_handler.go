package handler

import (
	"net/http"

	"instruction-viewer/internal/domain"
	"instruction-viewer/internal/engine"
	"instruction-viewer/internal/service"

	"github.com/gorilla/mux"
)

// SessionHandler exposes the reading-session engine over HTTP. Every mutating
// endpoint routes through the session manager, which serializes access to the
// underlying engine instance.
type SessionHandler struct {
	sessions *service.SessionManager
	logger   domain.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionManager, logger domain.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

type createSessionRequest struct {
	DocumentID    string `json:"document_id"`
	UserID        string `json:"user_id"`
	ViewportWidth int    `json:"viewport_width,omitempty"`
}

// CreateSession opens a new reading session for (document, user).
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, state, err := h.sessions.Create(req.DocumentID, req.UserID, req.ViewportWidth)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": id,
		"state":      state,
	})
}

// GetSession returns the current state snapshot.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respondWithState(w, r, func(e *engine.Engine) error { return nil })
}

// DisposeSession ends the session and removes it from the host.
func (h *SessionHandler) DisposeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Dispose(mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type progressRequest struct {
	ScrollOffset   float64 `json:"scroll_offset"`
	ScrollHeight   float64 `json:"scroll_height"`
	ViewportHeight float64 `json:"viewport_height"`
}

// UpdateProgress recomputes reading progress from scroll geometry.
func (h *SessionHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respondWithState(w, r, func(e *engine.Engine) error {
		_, err := e.UpdateProgress(req.ScrollOffset, req.ScrollHeight, req.ViewportHeight)
		return err
	})
}

// ToggleBookmark flips the session bookmark.
func (h *SessionHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	h.respondWithState(w, r, func(e *engine.Engine) error {
		_, err := e.ToggleBookmark()
		return err
	})
}

type noteRequest struct {
	Content  string  `json:"content"`
	Position float64 `json:"position"`
}

// AddNote appends a note to the session.
func (h *SessionHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var note *domain.ReadingNote
	err := h.sessions.With(mux.Vars(r)["id"], func(e *engine.Engine) error {
		var err error
		note, err = e.AddNote(req.Content, req.Position)
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote replaces an existing note's content.
func (h *SessionHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	var note *domain.ReadingNote
	err := h.sessions.With(vars["id"], func(e *engine.Engine) error {
		var err error
		note, err = e.UpdateNote(vars["noteId"], req.Content)
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote removes a note; deleting a missing note still succeeds.
func (h *SessionHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := h.sessions.With(vars["id"], func(e *engine.Engine) error {
		return e.DeleteNote(vars["noteId"])
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type highlightRequest struct {
	Text  string `json:"text"`
	Start int    `json:"start_position"`
	End   int    `json:"end_position"`
	Color string `json:"color,omitempty"`
	Note  string `json:"note,omitempty"`
}

// AddHighlight records a colored span.
func (h *SessionHandler) AddHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var highlight *domain.Highlight
	err := h.sessions.With(mux.Vars(r)["id"], func(e *engine.Engine) error {
		var err error
		highlight, err = e.AddHighlight(req.Text, req.Start, req.End, req.Color, req.Note)
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, highlight)
}

// RemoveHighlight removes a highlight; removing a missing one still succeeds.
func (h *SessionHandler) RemoveHighlight(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := h.sessions.With(vars["id"], func(e *engine.Engine) error {
		return e.RemoveHighlight(vars["highlightId"])
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSettings overlays a partial settings update.
func (h *SessionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var settings domain.ViewerSettings
	err := h.sessions.With(mux.Vars(r)["id"], func(e *engine.Engine) error {
		var err error
		settings, err = e.UpdateSettings(&patch)
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

type navigateRequest struct {
	View     *domain.ViewName `json:"view,omitempty"`
	Position *float64         `json:"position,omitempty"`
}

// Navigate switches the current view or jumps to an absolute position.
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.View == nil && req.Position == nil {
		writeError(w, http.StatusBadRequest, "view or position is required")
		return
	}

	h.respondWithState(w, r, func(e *engine.Engine) error {
		if req.View != nil {
			return e.NavigateToView(*req.View)
		}
		return e.NavigateToPosition(*req.Position)
	})
}

// GetNavigation returns the jump-to outline.
func (h *SessionHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	var items []domain.NavigationItem
	err := h.sessions.With(mux.Vars(r)["id"], func(e *engine.Engine) error {
		items = e.Navigation()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Search runs a full-text query and returns the result set with the cursor.
func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var results []domain.SearchResult
	var cursor int
	err := h.sessions.With(mux.Vars(r)["id"], func(e *engine.Engine) error {
		var err error
		results, err = e.Search(query)
		cursor = e.SearchCursor()
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
		"cursor":  cursor,
	})
}

type searchNavigateRequest struct {
	Index int `json:"index"`
}

// NavigateToSearchResult moves the search cursor and jumps to the match.
func (h *SessionHandler) NavigateToSearchResult(w http.ResponseWriter, r *http.Request) {
	var req searchNavigateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respondWithState(w, r, func(e *engine.Engine) error {
		return e.NavigateToSearchResult(req.Index)
	})
}

type zoomRequest struct {
	Level int `json:"level"`
}

// SetZoom sets the zoom percentage, clamped server-side.
func (h *SessionHandler) SetZoom(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respondWithState(w, r, func(e *engine.Engine) error {
		_, err := e.SetZoomLevel(req.Level)
		return err
	})
}

// Rotate adds a quarter turn.
func (h *SessionHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	h.respondWithState(w, r, func(e *engine.Engine) error {
		_, err := e.Rotate()
		return err
	})
}

// ToggleFullscreen requests entering or leaving exclusive display mode.
func (h *SessionHandler) ToggleFullscreen(w http.ResponseWriter, r *http.Request) {
	h.respondWithState(w, r, func(e *engine.Engine) error {
		_, err := e.ToggleFullscreen()
		return err
	})
}

// StartAutoScroll begins timer-driven scrolling.
func (h *SessionHandler) StartAutoScroll(w http.ResponseWriter, r *http.Request) {
	h.respondWithState(w, r, func(e *engine.Engine) error {
		return e.StartAutoScroll()
	})
}

// StopAutoScroll cancels timer-driven scrolling.
func (h *SessionHandler) StopAutoScroll(w http.ResponseWriter, r *http.Request) {
	h.respondWithState(w, r, func(e *engine.Engine) error {
		return e.StopAutoScroll()
	})
}

type gestureRequest struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

// HandleGesture classifies a touch delta and applies the resulting command.
func (h *SessionHandler) HandleGesture(w http.ResponseWriter, r *http.Request) {
	var req gestureRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respondWithState(w, r, func(e *engine.Engine) error {
		return e.HandleGesture(
			engine.TouchPoint{X: req.StartX, Y: req.StartY},
			engine.TouchPoint{X: req.EndX, Y: req.EndY},
		)
	})
}

type shareRequest struct {
	Target string `json:"target"`
}

// Share records a share of the document.
func (h *SessionHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respondWithState(w, r, func(e *engine.Engine) error {
		return e.Share(req.Target)
	})
}

type exportRequest struct {
	Format string `json:"format"`
}

// Export records an export of the document content.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.respondWithState(w, r, func(e *engine.Engine) error {
		return e.Export(req.Format)
	})
}

// Print records a print of the document.
func (h *SessionHandler) Print(w http.ResponseWriter, r *http.Request) {
	h.respondWithState(w, r, func(e *engine.Engine) error {
		return e.Print()
	})
}

// respondWithState runs fn against the session and, on success, returns the
// resulting state snapshot so clients can re-render from one response.
func (h *SessionHandler) respondWithState(w http.ResponseWriter, r *http.Request, fn func(*engine.Engine) error) {
	var state engine.State
	err := h.sessions.With(mux.Vars(r)["id"], func(e *engine.Engine) error {
		if err := fn(e); err != nil {
			return err
		}
		state = e.Snapshot()
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
