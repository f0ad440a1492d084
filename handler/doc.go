// Package handler provides type-safe HTTP request handling.
//
// Handlers are generic functions that receive a bound request value and
// return a Response. Wrap turns them into http.HandlerFunc values, running
// binders first and routing every failure to a single ErrorHandler:
//
//	type metadataRequest struct {
//		Filename string `path:"filename"`
//	}
//
//	func metadata(ctx handler.Context, req metadataRequest) handler.Response {
//		obj, err := store.Stat(ctx, req.Filename)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(toImage(obj))
//	}
//
//	r.Get("/api/images/{filename}", handler.Wrap(metadata,
//		handler.WithBinders[handler.Context, metadataRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, metadataRequest](errorHandler),
//	))
//
// # Responses
//
//	handler.JSON(v)                               // 200, v encoded as is
//	handler.JSON(v, handler.WithJSONStatus(201))  // custom status
//	handler.File(rc, handler.FileInfo{...})       // raw bytes, Range support when seekable
//	handler.Error(err)                            // defer to the error handler
//
// # Errors
//
// HTTPError carries a status, a client-facing message and an optional cause.
// NewErrorHandler resolves an error in this order: an HTTPError in the chain,
// then the configured ErrorClassifier functions, then a 500 whose "error"
// field is the error text. The body is always ErrorBody:
//
//	{"success":false,"message":"Image not found"}
//	{"success":false,"message":"Error uploading file","error":"disk full"}
package handler
