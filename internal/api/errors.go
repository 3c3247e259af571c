package api

import (
	"errors"
	"net/http"

	apperrors "lumenstudio/internal/errors"
)

// writeServiceError maps the domain error taxonomy onto HTTP status codes.
// Anything unrecognized is a storage or internal failure and stays opaque to
// the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		http.Error(w, "Slot no longer available", http.StatusConflict)
	case errors.Is(err, apperrors.ErrInvalidTransition):
		http.Error(w, "Status transition not allowed", http.StatusConflict)
	case errors.Is(err, apperrors.ErrNotFound):
		http.Error(w, "Reservation not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
