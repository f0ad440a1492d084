package images

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/svgstore/handler"
	"github.com/dmitrymomot/svgstore/pkg/logger"
)

// multipartOverhead is allowed on top of the file limit for boundaries,
// part headers and small form fields.
const multipartOverhead = 1 << 20

// requestLogger writes one record per request once the response is done.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				logger.HTTPRequest(r.Method, r.URL.Path),
				logger.Status(status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

// recoverer turns a panic into a logged 500 envelope. http.ErrAbortHandler is
// re-raised so net/http can abort the connection.
func recoverer(log *slog.Logger, errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					logger.Error(fmt.Errorf("panic: %v", rec)),
					slog.String("stack", string(debug.Stack())),
					logger.HTTPRequest(r.Method, r.URL.Path),
				)
				errorHandler(handler.NewContext(w, r), handler.ErrInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// bodyLimit caps the request body; reads past n fail with *http.MaxBytesError.
func bodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
