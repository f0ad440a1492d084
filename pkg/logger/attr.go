package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty attribute for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Filename is the stored file name a record refers to.
func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

// Size is a byte count.
func Size(n int64) slog.Attr {
	return slog.Int64("size", n)
}

// HTTPRequest groups the basic request line fields.
func HTTPRequest(method, path string) slog.Attr {
	return slog.Group("http",
		slog.String("method", method),
		slog.String("path", path),
	)
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
