package binder

import (
	"fmt"
	"net/http"
)

// Path creates a path parameter binder function using the provided extractor.
// The extractor is called once per tagged field with the parameter name.
//
// Struct tags:
//   - `path:"name"` - binds to path parameter "name"
//   - `path:"-"` - skips the field
//   - no tag - the lowercased field name is used
//
// Supported types: string, signed and unsigned integers, bool, and pointers to them.
//
// Example with chi router:
//
//	type ImageRequest struct {
//		Filename string `path:"filename"`
//	}
//
//	r.Get("/api/images/{filename}", handler.Wrap(getImage,
//		handler.WithBinders[handler.Context, ImageRequest](binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, fieldName string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv, err := targetStruct(v, ErrFailedToParsePath)
		if err != nil {
			return err
		}
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)

			if !field.CanSet() {
				continue
			}
			paramName, skip := parseFieldTag(fieldType, "path")
			if skip {
				continue
			}

			value := extractor(r, paramName)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, fieldType.Type, value); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}

		return nil
	}
}
