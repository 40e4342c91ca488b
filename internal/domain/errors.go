package domain

import "errors"

// Domain errors
var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionDisposed       = errors.New("session disposed")
	ErrNoteNotFound          = errors.New("note not found")
	ErrHighlightNotFound     = errors.New("highlight not found")
	ErrUnknownView           = errors.New("unknown view")
	ErrNoSelection           = errors.New("no active text selection")
	ErrFullscreenUnavailable = errors.New("fullscreen mode unavailable")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
