package storage

import "errors"

var (
	// Name validation
	ErrInvalidPath   = errors.New("invalid path") // name escapes the storage root or is empty
	ErrInvalidConfig = errors.New("invalid configuration")

	// File system errors
	ErrFileNotFound = errors.New("file not found")
	ErrNotDirectory = errors.New("path is not a directory")
	ErrIsDirectory  = errors.New("path is a directory")

	// Upload validation
	ErrFileTooLarge = errors.New("file size exceeds maximum allowed size")

	// I/O operation errors, wrapped with the underlying cause
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToReadFile        = errors.New("failed to read file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToReadDirectory   = errors.New("failed to read directory")
	ErrFailedToStatPath        = errors.New("failed to stat path")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")

	// S3 classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	// Context
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")
)
