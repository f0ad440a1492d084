package images

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/svgstore/pkg/storage"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config holds the image service settings.
type Config struct {
	StorageDriver string           `env:"STORAGE_DRIVER" envDefault:"local"`
	StorageDir    string           `env:"STORAGE_DIR" envDefault:"./uploads"`
	MaxUploadSize int64            `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`
	PublicPath    string           `env:"PUBLIC_PATH" envDefault:"/images"`
	S3            storage.S3Config `envPrefix:"S3_"`
}

// Validate normalises PublicPath and rejects unusable values.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverLocal, DriverS3:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.StorageDriver)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: MAX_UPLOAD_SIZE must be positive", ErrInvalidConfig)
	}

	c.PublicPath = "/" + strings.Trim(c.PublicPath, "/")
	if c.PublicPath == "/" {
		return fmt.Errorf("%w: PUBLIC_PATH cannot be the root", ErrInvalidConfig)
	}
	return nil
}

// NewStorage builds the backend selected by cfg.StorageDriver. For the local
// driver this creates the storage directory, so callers treat an error as fatal.
func NewStorage(ctx context.Context, cfg Config, opts ...storage.S3Option) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case DriverS3:
		return storage.NewS3Storage(ctx, cfg.S3, opts...)
	case DriverLocal, "":
		return storage.NewLocalStorage(cfg.StorageDir)
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, cfg.StorageDriver)
	}
}

// Location describes where files live, for startup logs.
func Location(cfg Config, store storage.Storage) string {
	switch s := store.(type) {
	case *storage.LocalStorage:
		return s.Dir()
	case *storage.S3Storage:
		return "s3://" + cfg.S3.Bucket + "/" + strings.Trim(cfg.S3.Prefix, "/")
	default:
		return cfg.StorageDriver
	}
}
