package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
// Larger parts spill to temporary files managed by mime/multipart.
const DefaultMaxMemory = 10 << 20

var (
	fileHeaderType      = reflect.TypeOf((*multipart.FileHeader)(nil))
	fileHeaderSliceType = reflect.TypeOf([]*multipart.FileHeader(nil))
)

// File creates a file binder that processes fields with `file:` tags.
// Fields must be *multipart.FileHeader (first part) or []*multipart.FileHeader
// (all parts under the field name). Content is not read; handlers open the
// header themselves, so nothing is buffered beyond what multipart parsing does.
//
// Requests that are not multipart/form-data return ErrBinderNotApplicable.
// Body limit errors (*http.MaxBytesError) are preserved in the chain.
//
// Example:
//
//	type UploadRequest struct {
//		Image []*multipart.FileHeader `file:"image"`
//	}
//
//	r.Post("/upload", handler.Wrap(upload,
//		handler.WithBinders[handler.Context, UploadRequest](binder.File(binder.DefaultMaxMemory)),
//	))
func File(maxMemory int64) func(r *http.Request, v any) error {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}

	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			return ErrBinderNotApplicable
		}

		rv, err := targetStruct(v, ErrFailedToParseForm)
		if err != nil {
			return err
		}

		if r.MultipartForm == nil {
			if err := r.ParseMultipartForm(maxMemory); err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					return fmt.Errorf("%w: %w", ErrFailedToParseForm, maxBytesErr)
				}
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)

			if !field.CanSet() {
				continue
			}

			tag := fieldType.Tag.Get("file")
			if tag == "" || tag == "-" {
				continue
			}

			headers := r.MultipartForm.File[tag]
			if len(headers) == 0 {
				continue
			}

			switch fieldType.Type {
			case fileHeaderType:
				field.Set(reflect.ValueOf(headers[0]))
			case fileHeaderSliceType:
				field.Set(reflect.ValueOf(headers))
			default:
				return fmt.Errorf("%w: field %s: unsupported type %s", ErrFailedToParseForm, fieldType.Name, fieldType.Type)
			}
		}

		return nil
	}
}

// FileCount returns the number of file parts in a parsed multipart form,
// across all field names.
func FileCount(r *http.Request) int {
	if r.MultipartForm == nil {
		return 0
	}
	n := 0
	for _, headers := range r.MultipartForm.File {
		n += len(headers)
	}
	return n
}
