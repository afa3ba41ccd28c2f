package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"

	"github.com/tripdesk/backend/internal/domain"
	"github.com/tripdesk/backend/internal/httperr"
)

// writeServiceError maps a service error to its HTTP status. Domain errors
// expose their message; anything else is logged and answered with a generic
// 500 so no internal detail leaks to the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrTripNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound):
		writeError(w, http.StatusNotFound, httperr.CodeNotFound, domain.Message(err, "not found"))
	case errors.Is(err, domain.ErrClientAlreadyExists),
		errors.Is(err, domain.ErrClientAlreadyRegistered),
		errors.Is(err, domain.ErrTripFull):
		writeError(w, http.StatusConflict, httperr.CodeConflict, domain.Message(err, "conflict"))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, httperr.CodeValidation, domain.Message(err, "invalid input"))
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, httperr.CodeInternalError, "internal server error")
	}
}

var errTrailingData = errors.New("trailing data after JSON value")

// decodeBody decodes a JSON request body holding exactly one value into dst
// and writes the error response itself when that fails. It reports whether
// decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		// Anything but whitespace after the value is rejected.
		if err = dec.Decode(&json.RawMessage{}); errors.Is(err, io.EOF) {
			return true
		}
		if err == nil {
			err = errTrailingData
		}
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, httperr.CodeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, errTrailingData):
		writeError(w, http.StatusUnprocessableEntity, httperr.CodeValidation, "request body must contain a single JSON object")
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusUnprocessableEntity, httperr.CodeValidation, "request body is required")
	default:
		writeError(w, http.StatusUnprocessableEntity, httperr.CodeValidation, "request body is not valid JSON")
	}
	return false
}

// pathInt binds the integer path parameter name the way generated OpenAPI
// servers do, writing a 400 response when the value is not an integer.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, httperr.CodeBadRequest,
			fmt.Sprintf("invalid format for parameter %s: must be an integer", name))
		return 0, false
	}
	return v, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	httperr.Write(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeText writes a plain-text confirmation.
func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}
