package middleware

import (
	"fmt"
	"net/http"

	"github.com/tripdesk/backend/internal/httperr"
)

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. A request advertising a larger Content-Length is
// rejected with 413 before reaching the next handler. Otherwise the body is
// wrapped in http.MaxBytesReader, so a streamed body fails on read once it
// passes the limit and the handler reports 413 itself.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				httperr.Write(w, http.StatusRequestEntityTooLarge, httperr.CodeTooLarge,
					fmt.Sprintf("request body exceeds %d bytes", limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
