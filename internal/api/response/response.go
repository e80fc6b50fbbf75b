// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses and standardized error responses.
package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
)

// ErrorResponse represents a structured error response returned by the API.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
// The details parameter can be an error string, additional context, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "resource not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, status, response)
}

// RespondServiceError maps a service error onto its HTTP status and sends it.
//
// Status mapping:
//   - validation failures, malformed payloads, unknown formats: 400 Bad Request
//   - forecasts over an empty history: 404 Not Found
//   - everything else, storage failures included: 500 Internal Server Error
//
// message is used for 500 responses only; client errors report the error itself.
func RespondServiceError(w http.ResponseWriter, err error, message string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		RespondError(w, status, message, err.Error())
		return
	}
	RespondError(w, status, clientMessage(err), err.Error())
}

// StatusFor returns the HTTP status that represents err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrFormat),
		errors.Is(err, apperrors.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInsufficientData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func clientMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrFormat):
		return apperrors.ErrFormat.Error()
	case errors.Is(err, apperrors.ErrValidation):
		return apperrors.ErrValidation.Error()
	case errors.Is(err, apperrors.ErrUnknownFormat):
		return apperrors.ErrUnknownFormat.Error()
	case errors.Is(err, apperrors.ErrInsufficientData):
		return apperrors.ErrInsufficientData.Error()
	default:
		return err.Error()
	}
}

// RespondPayload sends a pre-serialized body with the given content type.
// A non-empty filename marks the body as a download.
func RespondPayload(w http.ResponseWriter, status int, contentType, filename, body string) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Printf("failed to write response body: %v", err)
	}
}
