package images_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/svgstore/binder"
	"github.com/dmitrymomot/svgstore/internal/images"
	"github.com/dmitrymomot/svgstore/pkg/config"
	"github.com/dmitrymomot/svgstore/pkg/storage"
)

func TestConfig_Load(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load[images.Config](config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, images.DriverLocal, cfg.StorageDriver)
	assert.Equal(t, "./uploads", cfg.StorageDir)
	assert.EqualValues(t, 5242880, cfg.MaxUploadSize)
	assert.Equal(t, "/images", cfg.PublicPath)
	assert.Equal(t, "us-east-1", cfg.S3.Region)

	cfg, err = config.Load[images.Config](config.WithEnvironment(map[string]string{
		"STORAGE_DRIVER":      "s3",
		"MAX_UPLOAD_SIZE":     "1048576",
		"S3_BUCKET":           "svg",
		"S3_PREFIX":           "uploads/",
		"S3_FORCE_PATH_STYLE": "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, images.DriverS3, cfg.StorageDriver)
	assert.EqualValues(t, 1<<20, cfg.MaxUploadSize)
	assert.Equal(t, "svg", cfg.S3.Bucket)
	assert.Equal(t, "uploads/", cfg.S3.Prefix)
	assert.True(t, cfg.S3.ForcePathStyle)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      images.Config
		wantPath string
		wantErr  bool
	}{
		{"defaults", images.Config{StorageDriver: "local", MaxUploadSize: 1, PublicPath: "/images"}, "/images", false},
		{"path normalised", images.Config{StorageDriver: "s3", MaxUploadSize: 1, PublicPath: "static/svg/"}, "/static/svg", false},
		{"root path", images.Config{StorageDriver: "local", MaxUploadSize: 1, PublicPath: "/"}, "", true},
		{"unknown driver", images.Config{StorageDriver: "ftp", MaxUploadSize: 1, PublicPath: "/images"}, "", true},
		{"zero size", images.Config{StorageDriver: "local", PublicPath: "/images"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, images.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, cfg.PublicPath)
		})
	}
}

func TestNewStorage(t *testing.T) {
	t.Parallel()

	t.Run("local creates directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "uploads")
		cfg := testConfig(dir)

		store, err := images.NewStorage(context.Background(), cfg)
		require.NoError(t, err)
		assert.DirExists(t, dir)
		assert.Equal(t, dir, images.Location(cfg, store))
	})

	t.Run("local path is a file", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "uploads")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		_, err := images.NewStorage(context.Background(), testConfig(file))
		assert.ErrorIs(t, err, storage.ErrNotDirectory)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		_, err := images.NewStorage(context.Background(), images.Config{StorageDriver: "ftp"})
		assert.ErrorIs(t, err, images.ErrInvalidConfig)
	})
}

func TestTooLargeError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "File too large. Maximum size is 5MB.", images.TooLargeError(5<<20).Message)
	assert.Equal(t, "File too large. Maximum size is 512 bytes.", images.TooLargeError(512).Message)
	assert.Equal(t, http.StatusBadRequest, images.TooLargeError(1).Code)
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	classify := func(err error) (int, string, bool) {
		for _, c := range images.ErrorClassifiers(5 << 20) {
			if e, ok := c(err); ok {
				return e.Code, e.Message, true
			}
		}
		return 0, "", false
	}

	code, msg, ok := classify(fmt.Errorf("%w: %w", binder.ErrFailedToParseForm, &http.MaxBytesError{Limit: 10}))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "File too large. Maximum size is 5MB.", msg)

	code, msg, ok = classify(fmt.Errorf("%w: unexpected EOF", binder.ErrFailedToParseForm))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid multipart form data", msg)

	code, _, ok = classify(fmt.Errorf("%w: %q", storage.ErrInvalidPath, ".."))
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)

	_, _, ok = classify(errors.New("something else"))
	assert.False(t, ok)
}
