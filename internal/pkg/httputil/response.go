package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/derob357/sisters-promise/internal/pkg/logger"
)

// ErrorResponse is the standard error envelope for all API errors.
// Detail is only populated in development mode and carries the internal
// cause; production responses never include it.
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Detail    string `json:"detail,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("response encode failed", "err", err.Error())
	}
}

// OK writes a 200 response with the given data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Error writes the standard error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorDetail writes the error envelope with an internal detail field.
// Callers must gate this on the development flag.
func ErrorDetail(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, ErrorResponse{
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Detail:    detail,
	})
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Decode reads JSON from the request body into dst. Returns false after
// writing a 400 (malformed JSON) or 413 (body over the configured cap,
// surfaced by http.MaxBytesReader) response.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		Error(w, http.StatusRequestEntityTooLarge, "request payload too large")
		return false
	}
	BadRequest(w, "invalid JSON body")
	return false
}
