package images

import (
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/dmitrymomot/svgstore/binder"
	"github.com/dmitrymomot/svgstore/handler"
	"github.com/dmitrymomot/svgstore/pkg/logger"
	"github.com/dmitrymomot/svgstore/pkg/storage"
)

// Service identity reported by GET /.
const (
	ServiceName    = "SVG Images API Service"
	ServiceVersion = "1.0.0"
)

// Handlers implements the image endpoints on top of a Storage backend.
type Handlers struct {
	store      storage.Storage
	log        *slog.Logger
	maxSize    int64
	publicPath string
}

// NewHandlers creates the image handlers. cfg is expected to be validated.
func NewHandlers(store storage.Storage, cfg Config, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		store:      store,
		log:        log.With(logger.Component("images")),
		maxSize:    cfg.MaxUploadSize,
		publicPath: cfg.PublicPath,
	}
}

// Info describes the service and its endpoints.
func (h *Handlers) Info(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(ServiceInfo{
		Message: ServiceName,
		Version: ServiceVersion,
		Endpoints: map[string]string{
			"upload": "POST /upload - Upload SVG file",
			"list":   "GET /images/list - List all images",
			"fetch":  "GET " + h.publicPath + "/:filename - Fetch specific image",
			"direct": "GET " + h.publicPath + "/:filename - Direct image URL",
			"info":   "GET /api/images/:filename - Get image info",
			"delete": "DELETE /images/:filename - Delete image",
		},
	})
}

// Upload stores a single SVG sent as the multipart field "image" under its
// original filename, replacing any file of the same name.
func (h *Handlers) Upload(ctx handler.Context, req UploadRequest) handler.Response {
	if binder.FileCount(ctx.Request()) > 1 {
		return handler.Error(ErrUnexpectedField)
	}
	if len(req.Image) == 0 || !isSVG(req.Image[0]) {
		return handler.Error(ErrNoFile)
	}

	fh := req.Image[0]
	if fh.Size > h.maxSize {
		return handler.Error(TooLargeError(h.maxSize).Wrap(storage.ErrFileTooLarge))
	}
	if err := storage.ValidateName(fh.Filename); err != nil {
		return handler.Error(ErrInvalidFilename.Wrap(err))
	}

	f, err := fh.Open()
	if err != nil {
		return handler.Error(ErrUpload.Wrap(err))
	}
	defer f.Close()

	obj, err := h.store.Save(ctx, fh.Filename, f)
	if err != nil {
		return handler.Error(storageError(err, ErrUpload, h.maxSize))
	}

	h.log.InfoContext(ctx, "image uploaded",
		logger.Filename(obj.Name),
		logger.Size(obj.Size),
	)

	link := publicURL(ctx.Request(), h.publicPath, obj.Name)
	return handler.JSON(UploadResponse{
		Success: true,
		Message: "SVG image uploaded successfully",
		Data: UploadedFile{
			Filename:     obj.Name,
			OriginalName: fh.Filename,
			Size:         obj.Size,
			URL:          link,
			DirectURL:    link,
		},
	})
}

// List returns every stored file whose name ends in .svg.
func (h *Handlers) List(ctx handler.Context, _ struct{}) handler.Response {
	objects, err := h.store.List(ctx)
	if err != nil {
		return handler.Error(ErrList.Wrap(err))
	}

	images := make([]Image, 0, len(objects))
	for _, obj := range objects {
		if !storage.HasSVGExtension(obj.Name) {
			continue
		}
		images = append(images, h.image(ctx.Request(), obj))
	}

	return handler.JSON(ListResponse{
		Success: true,
		Count:   len(images),
		Images:  images,
	})
}

// Metadata returns size and upload time for one file, whatever its extension.
func (h *Handlers) Metadata(ctx handler.Context, req FileRequest) handler.Response {
	if err := storage.ValidateName(req.Filename); err != nil {
		return handler.Error(ErrInvalidFilename.Wrap(err))
	}

	obj, err := h.store.Stat(ctx, req.Filename)
	if err != nil {
		return handler.Error(storageError(err, ErrFetch, h.maxSize))
	}

	return handler.JSON(ImageResponse{
		Success: true,
		Data:    h.image(ctx.Request(), *obj),
	})
}

// Delete removes one file, whatever its extension.
func (h *Handlers) Delete(ctx handler.Context, req FileRequest) handler.Response {
	if err := storage.ValidateName(req.Filename); err != nil {
		return handler.Error(ErrInvalidFilename.Wrap(err))
	}

	if err := h.store.Delete(ctx, req.Filename); err != nil {
		return handler.Error(storageError(err, ErrDelete, h.maxSize))
	}

	h.log.InfoContext(ctx, "image deleted", logger.Filename(req.Filename))

	return handler.JSON(MessageResponse{
		Success: true,
		Message: "Image deleted successfully",
	})
}

// Serve streams the raw bytes of a stored file. Names that cannot exist in
// the store are reported as missing.
func (h *Handlers) Serve(ctx handler.Context, req FileRequest) handler.Response {
	if err := storage.ValidateName(req.Filename); err != nil {
		return handler.Error(ErrImageNotFound.Wrap(err))
	}

	rc, obj, err := h.store.Open(ctx, req.Filename)
	if err != nil {
		return handler.Error(storageError(err, ErrFetch, h.maxSize))
	}

	return handler.File(rc, handler.FileInfo{
		Name:        obj.Name,
		ContentType: storage.ContentTypeByName(obj.Name),
		Size:        obj.Size,
		ModTime:     obj.ModifiedAt,
	})
}

func (h *Handlers) image(r *http.Request, obj storage.Object) Image {
	link := publicURL(r, h.publicPath, obj.Name)
	return Image{
		Filename:   obj.Name,
		URL:        link,
		DirectURL:  link,
		Size:       obj.Size,
		UploadedAt: obj.CreatedAt.UTC(),
	}
}

// isSVG accepts a part whose declared type is image/svg+xml or, failing that,
// whose filename ends in .svg.
func isSVG(fh *multipart.FileHeader) bool {
	if mediaType, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type")); err == nil && mediaType == storage.SVGContentType {
		return true
	}
	return storage.HasSVGExtension(fh.Filename)
}
