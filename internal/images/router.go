package images

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/svgstore/binder"
	"github.com/dmitrymomot/svgstore/handler"
	"github.com/dmitrymomot/svgstore/pkg/clientip"
	"github.com/dmitrymomot/svgstore/pkg/httpserver"
	"github.com/dmitrymomot/svgstore/pkg/requestid"
	"github.com/dmitrymomot/svgstore/pkg/storage"
)

// NewRouter wires the image endpoints, health check and middleware stack.
// cfg must have passed Validate.
func NewRouter(store storage.Storage, cfg Config, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	h := NewHandlers(store, cfg, log)
	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		Classifiers: ErrorClassifiers(cfg.MaxUploadSize),
	})
	path := binder.Path(urlParam)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware(),
		clientip.Middleware(),
		requestLogger(log),
		recoverer(log, errorHandler),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{
				http.MethodGet, http.MethodHead, http.MethodPut,
				http.MethodPatch, http.MethodPost, http.MethodDelete,
			},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{requestid.Header},
			MaxAge:         300,
		}),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorHandler(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})

	r.Get("/", wrap[struct{}](h.Info, errorHandler))
	r.Get("/health", httpserver.HealthCheckHandler(log, store.Ping))

	r.With(bodyLimit(cfg.MaxUploadSize+multipartOverhead)).
		Post("/upload", wrap[UploadRequest](h.Upload, errorHandler, binder.File(binder.DefaultMaxMemory)))

	r.Get("/images/list", wrap[struct{}](h.List, errorHandler))
	r.Get("/api/images/{filename}", wrap[FileRequest](h.Metadata, errorHandler, path))
	r.Delete("/images/{filename}", wrap[FileRequest](h.Delete, errorHandler, path))

	serve := wrap[FileRequest](h.Serve, errorHandler, path)
	r.Get(cfg.PublicPath+"/{filename}", serve)
	r.Head(cfg.PublicPath+"/{filename}", serve)

	return r
}

func wrap[R any](fn handler.HandlerFunc[handler.Context, R], errorHandler handler.ErrorHandler[handler.Context], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithErrorHandler[handler.Context, R](errorHandler),
		handler.WithBinders[handler.Context, R](binders...),
	)
}

// urlParam reads a chi route parameter. chi matches on the escaped path when
// one exists, so the value is unescaped here; "%2F" therefore reaches the
// handler as "/" and is rejected by name validation.
func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// Endpoints lists the public routes, one line each, for startup logs.
func Endpoints(cfg Config) []string {
	return []string{
		"POST   /upload - Upload SVG file",
		"GET    /images/list - List all images",
		"GET    /api/images/:filename - Get image info",
		"GET    " + cfg.PublicPath + "/:filename - Direct image access",
		"DELETE /images/:filename - Delete image",
		"GET    /health - Readiness check",
	}
}
