package router

import (
	"net/http"
	"runtime/debug"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/stacktrace"
)

// middlewareRecoverer converts handler panics into a 500 envelope and logs
// the condensed stack trace. http.ErrAbortHandler is re-raised so the server
// keeps its abort semantics.
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint // must compare directly
				panic(rvr)
			}

			paths := stacktrace.InternalPaths(debug.Stack())
			if len(paths) == 0 {
				slog.ErrorContext(r.Context(), "panic while handling request", "because", rvr, "stack", string(debug.Stack()))
			} else {
				slog.ErrorContext(r.Context(), "panic while handling request", "because", rvr, "stack", paths)
			}

			writeJSON(w, failure("Internal server error", nil, nil), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
