package binder

import "errors"

// Common binding errors
var (
	// ErrBinderNotApplicable is returned when a binder does not apply to the
	// request (e.g. the file binder on a non-multipart request). Wrap skips it.
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParsePath    = errors.New("failed to parse path parameters")
)
