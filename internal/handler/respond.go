package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/studybuddy/studybuddy/internal/service"
	"github.com/studybuddy/studybuddy/internal/validation"
)

const maxBodyBytes = 1 << 20

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func success(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Success: true, Data: data})
}

func failure(w http.ResponseWriter, status int, message string, details any) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: message,
		Details: details,
	})
}

// fail maps service errors onto status codes. Anything unrecognised is a 500 and is
// logged at error level, which also reaches Sentry when configured.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	var serr *service.StorageError

	switch {
	case errors.As(err, &verr):
		failure(w, http.StatusBadRequest, "Invalid input", verr.Fields)
	case errors.Is(err, service.ErrForgivenessUsed):
		failure(w, http.StatusConflict, "Forgiveness already used this week", nil)
	case errors.Is(err, service.ErrSessionActive), errors.Is(err, service.ErrSessionFinished):
		failure(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrSessionNotFound):
		failure(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidSessionKind), errors.Is(err, service.ErrInvalidDuration):
		failure(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &serr):
		slog.Error("storage failure", "error", err, "op", serr.Op, "path", r.URL.Path)
		failure(w, http.StatusInternalServerError, "Something went wrong, please retry", nil)
	default:
		slog.Error("unhandled error", "error", err, "path", r.URL.Path)
		failure(w, http.StatusInternalServerError, "Something went wrong, please retry", nil)
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return validation.NewError("body", "must be a valid JSON object")
	}
	return validation.Struct(dst)
}
