// Package httperr defines the JSON error envelope shared by the handlers and
// the middleware, so every error body has the same shape.
package httperr

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every error body.
type Response struct {
	Error Detail `json:"error"`
}

// Detail carries a machine-readable code and a human-readable message.
type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Codes used in Detail.Code.
const (
	CodeNotFound      = "not_found"
	CodeConflict      = "conflict"
	CodeValidation    = "validation_error"
	CodeBadRequest    = "bad_request"
	CodeTooLarge      = "payload_too_large"
	CodeInternalError = "internal_error"
)

// Write sends an error envelope with the given status.
func Write(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Error: Detail{Code: code, Message: message}})
}
