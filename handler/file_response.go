package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// FileInfo describes content served by File.
type FileInfo struct {
	Name        string
	ContentType string
	Size        int64 // negative or zero means unknown
	ModTime     time.Time
}

type fileResponse struct {
	content io.ReadCloser
	info    FileInfo
}

// File streams content as the response body and closes it.
// Seekable content goes through http.ServeContent, which adds Range and
// conditional request support; anything else is copied with the known headers.
func File(content io.ReadCloser, info FileInfo) Response {
	return fileResponse{content: content, info: info}
}

func (f fileResponse) Render(w http.ResponseWriter, r *http.Request) error {
	defer f.content.Close()

	if f.info.ContentType != "" {
		w.Header().Set("Content-Type", f.info.ContentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if rs, ok := f.content.(io.ReadSeeker); ok {
		http.ServeContent(w, r, f.info.Name, f.info.ModTime, rs)
		return nil
	}

	if f.info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(f.info.Size, 10))
	}
	if !f.info.ModTime.IsZero() {
		w.Header().Set("Last-Modified", f.info.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return nil
	}
	// Headers are already sent; a failed copy is a client-side disconnect in practice.
	_, _ = io.Copy(w, f.content)
	return nil
}
