package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"eventmanagement/internal/delivery/http/helpers"
)

// Recovery turns a handler panic into a logged 500 envelope.
func Recovery(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"path", r.URL.Path,
				"method", r.Method,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			helpers.WriteInternalError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
