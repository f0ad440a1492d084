package images

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/svgstore/binder"
	"github.com/dmitrymomot/svgstore/handler"
	"github.com/dmitrymomot/svgstore/pkg/storage"
)

// ErrInvalidConfig is returned by Config.Validate and NewStorage.
var ErrInvalidConfig = errors.New("invalid images configuration")

// Client-facing errors. 5xx values are wrapped with their cause at the call site.
var (
	ErrNoFile          = handler.NewHTTPError(http.StatusBadRequest, "No file uploaded or invalid file type")
	ErrUnexpectedField = handler.NewHTTPError(http.StatusBadRequest, "Unexpected file field")
	ErrInvalidFilename = handler.NewHTTPError(http.StatusBadRequest, "Invalid filename")
	ErrInvalidForm     = handler.NewHTTPError(http.StatusBadRequest, "Invalid multipart form data")
	ErrImageNotFound   = handler.NewHTTPError(http.StatusNotFound, "Image not found")

	ErrUpload = handler.NewHTTPError(http.StatusInternalServerError, "Error uploading file")
	ErrList   = handler.NewHTTPError(http.StatusInternalServerError, "Error fetching image list")
	ErrFetch  = handler.NewHTTPError(http.StatusInternalServerError, "Error fetching image")
	ErrDelete = handler.NewHTTPError(http.StatusInternalServerError, "Error deleting image")
)

// TooLargeError builds the oversize error for a byte limit, e.g.
// "File too large. Maximum size is 5MB.".
func TooLargeError(maxSize int64) handler.HTTPError {
	mb := maxSize / (1 << 20)
	if mb < 1 {
		return handler.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %d bytes.", maxSize))
	}
	return handler.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB.", mb))
}

// ErrorClassifiers recognise upload-size violations and binder failures,
// which reach the error handler without an HTTPError attached.
func ErrorClassifiers(maxSize int64) []handler.ErrorClassifier {
	return []handler.ErrorClassifier{
		func(err error) (handler.HTTPError, bool) {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) || errors.Is(err, storage.ErrFileTooLarge) {
				return TooLargeError(maxSize).Wrap(err), true
			}
			return handler.HTTPError{}, false
		},
		func(err error) (handler.HTTPError, bool) {
			switch {
			case errors.Is(err, storage.ErrInvalidPath):
				return ErrInvalidFilename.Wrap(err), true
			case errors.Is(err, binder.ErrFailedToParsePath):
				return ErrInvalidFilename.Wrap(err), true
			case errors.Is(err, binder.ErrFailedToParseForm):
				return ErrInvalidForm.Wrap(err), true
			case errors.Is(err, binder.ErrFailedToParseJSON),
				errors.Is(err, binder.ErrUnsupportedMediaType),
				errors.Is(err, binder.ErrMissingContentType):
				return handler.ErrBadRequest.Wrap(err), true
			}
			return handler.HTTPError{}, false
		},
	}
}

// storageError maps a storage failure to its client-facing error. fallback is
// the operation's 5xx error.
func storageError(err error, fallback handler.HTTPError, maxSize int64) handler.HTTPError {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return TooLargeError(maxSize).Wrap(err)
	case errors.Is(err, storage.ErrFileNotFound), errors.Is(err, storage.ErrIsDirectory):
		return ErrImageNotFound.Wrap(err)
	case errors.Is(err, storage.ErrInvalidPath):
		return ErrInvalidFilename.Wrap(err)
	default:
		return fallback.Wrap(err)
	}
}
