package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"instruction-viewer/internal/domain"
	apperrors "instruction-viewer/pkg/errors"
)

// writeJSON writes a JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps engine/domain failures onto the application error
// taxonomy: validation failures are 400, missing resources 404, disposed
// sessions 410, everything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	appErr := toAppError(err)
	writeJSON(w, appErr.StatusCode, map[string]string{
		"error": appErr.Message,
		"type":  string(appErr.Type),
	})
}

func toAppError(err error) *apperrors.AppError {
	switch {
	case domain.IsValidation(err):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrNoteNotFound),
		errors.Is(err, domain.ErrHighlightNotFound):
		return apperrors.NewNotFoundError(err.Error())
	case errors.Is(err, domain.ErrSessionDisposed):
		return apperrors.NewGoneError(err.Error())
	case errors.Is(err, domain.ErrUnknownView), errors.Is(err, domain.ErrNoSelection):
		return apperrors.NewValidationError(err.Error())
	default:
		return apperrors.NewInternalError(err.Error(), err)
	}
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
