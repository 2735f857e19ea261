package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Machine-readable error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidAuthHeader  = "INVALID_AUTH_HEADER"
	CodeMissingAuth        = "MISSING_AUTH"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeNotFound           = "NOT_FOUND"
	CodePasswordTooLong    = "PASSWORD_TOO_LONG"
	CodeInvalidDate        = "INVALID_DATE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondError sends a JSON error response with the given message and status code.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// RespondErrorWithCode sends a JSON error response with a machine-readable error code.
func RespondErrorWithCode(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes a size-limited JSON request body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
