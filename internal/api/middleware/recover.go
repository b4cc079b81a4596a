package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/JasVita/wealthpilot-portal/internal/api/response"
)

// RecoverEnvelope converts a panic in a downstream handler into the 500 error envelope.
// The stack is logged, never sent to the client. If the handler already started writing,
// nothing more is written.
func RecoverEnvelope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracked := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("panic serving %s: %v\n%s", sanitize(r.URL.Path), rec, debug.Stack())
			if !tracked.wroteHeader {
				response.RespondError(tracked, http.StatusInternalServerError, "failed to load")
			}
		}()

		next.ServeHTTP(tracked, r)
	})
}
