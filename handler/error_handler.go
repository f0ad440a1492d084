package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/svgstore/pkg/logger"
)

// ErrorClassifier maps errors the handler layer does not know about (binder
// or storage errors, for instance) to an HTTPError. It reports false when the
// error is not its concern.
type ErrorClassifier func(err error) (HTTPError, bool)

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Classifiers run in order after the HTTPError check; the first match wins.
	Classifiers []ErrorClassifier
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	Detail     string // rendered as "error"; only set for 5xx
	LogLevel   slog.Level
}

// classify resolves err to a status and message. An HTTPError anywhere in the
// chain wins, then classifiers; everything else is a 500 carrying err's text.
func classify(err error, classifiers []ErrorClassifier) ErrorInfo {
	httpErr, ok := asHTTPError(err)
	if !ok {
		for _, c := range classifiers {
			if c == nil {
				continue
			}
			if e, matched := c(err); matched {
				httpErr, ok = e, true
				break
			}
		}
	}
	if !ok {
		httpErr = ErrInternalServerError.Wrap(err)
	}

	info := ErrorInfo{
		StatusCode: httpErr.Code,
		Message:    httpErr.Message,
		LogLevel:   slog.LevelWarn,
	}
	if info.StatusCode >= http.StatusInternalServerError {
		info.LogLevel = slog.LevelError
		if httpErr.Cause != nil {
			info.Detail = httpErr.Cause.Error()
		}
	}
	return info
}

func asHTTPError(err error) (HTTPError, bool) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	var ptr *HTTPError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return HTTPError{}, false
}

func writeErrorBody(w http.ResponseWriter, info ErrorInfo) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	return json.NewEncoder(w).Encode(ErrorBody{
		Success: false,
		Message: info.Message,
		Error:   info.Detail,
	})
}

// NewErrorHandler creates the shared terminal error handler: it classifies the
// error, logs it (warn for 4xx, error for 5xx) and writes the JSON failure
// envelope. Configure it once and pass it to every wrapped handler. Records
// are logged with the request context, so a logger built with
// requestid.LoggerExtractor tags them with the request ID.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classify(err, cfg.Classifiers)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			logger.Status(info.StatusCode),
			logger.HTTPRequest(r.Method, r.URL.Path),
			logger.Component("error_handler"),
		)

		if werr := writeErrorBody(ctx.ResponseWriter(), info); werr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to write error response",
				logger.Error(werr),
				logger.Event("render_error"),
			)
		}
	}
}
