package images

import (
	"mime/multipart"
	"time"
)

// ServiceInfo is the body of GET /.
type ServiceInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// UploadRequest is bound from the multipart form of POST /upload.
type UploadRequest struct {
	Image []*multipart.FileHeader `file:"image"`
}

// FileRequest carries the {filename} URL parameter.
type FileRequest struct {
	Filename string `path:"filename"`
}

// UploadedFile describes a freshly stored upload.
type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	DirectURL    string `json:"directUrl"`
}

// Image describes a stored file as returned by the list and metadata endpoints.
type Image struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	DirectURL  string    `json:"directUrl"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// UploadResponse is the success body of POST /upload.
type UploadResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    UploadedFile `json:"data"`
}

// ListResponse is the success body of GET /images/list.
type ListResponse struct {
	Success bool    `json:"success"`
	Count   int     `json:"count"`
	Images  []Image `json:"images"`
}

// ImageResponse is the success body of GET /api/images/{filename}.
type ImageResponse struct {
	Success bool  `json:"success"`
	Data    Image `json:"data"`
}

// MessageResponse is a success body with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
