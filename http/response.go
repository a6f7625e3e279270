package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bestemiy/inkstudio"
)

// ErrorResponse is the JSON body of every failure response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the response matching the error taxonomy. Errors that
// are not explicitly anticipated propagate as 500 with no retry and no
// suppression.
func HandleError(w http.ResponseWriter, err error) {
	slog.Error("request error", "error", err)

	switch {
	case errors.Is(err, inkstudio.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, inkstudio.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, inkstudio.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, inkstudio.ErrUnsupportedMedia):
		WriteError(w, http.StatusBadRequest, "File must be an image")
	case errors.Is(err, inkstudio.ErrTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "File size exceeds 10MB limit")
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
