package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// FieldError is a single entry in the error envelope. Param names the
// request field that failed validation and is empty for domain errors.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorsResponse is the envelope used for every error response.
type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondError sends a single-message error envelope.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorsResponse{Errors: []FieldError{{Msg: message}}}, statusCode)
}

// RespondFieldErrors sends a validation error envelope listing every
// failed field.
func RespondFieldErrors(w http.ResponseWriter, errs []FieldError, statusCode int) {
	RespondJSON(w, ErrorsResponse{Errors: errs}, statusCode)
}
