package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// SVGExtension is the extension listed files must carry.
const SVGExtension = ".svg"

// SVGContentType is the MIME type of SVG documents.
const SVGContentType = "image/svg+xml"

// Object describes a stored file. All fields are derived from the backend at
// read time; nothing is persisted next to the file itself.
type Object struct {
	Name        string
	Size        int64
	ContentType string
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// Storage is a flat, name-keyed file store.
type Storage interface {
	// Save creates or replaces the file called name with the contents of r.
	Save(ctx context.Context, name string, r io.Reader) (*Object, error)
	// Stat returns metadata for a single file. ErrFileNotFound if absent.
	Stat(ctx context.Context, name string) (*Object, error)
	// List returns every file in the store in enumeration order.
	List(ctx context.Context) ([]Object, error)
	// Open returns the raw contents of a file. The caller closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, *Object, error)
	// Delete removes a single file. ErrFileNotFound if absent.
	Delete(ctx context.Context, name string) error
	// Ping reports whether the backend is reachable and usable.
	Ping(ctx context.Context) error
}

// ValidateName rejects names that cannot be used as a single path component
// inside the storage root. Everything else is accepted verbatim.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return nil
}

// HasSVGExtension reports whether name ends in ".svg", ignoring case.
func HasSVGExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), SVGExtension)
}

// ContentTypeByName infers a MIME type from the file extension.
func ContentTypeByName(name string) string {
	if HasSVGExtension(name) {
		return SVGContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
