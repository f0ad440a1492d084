package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	tempPrefix = ".upload-"
	tempSuffix = ".tmp"
)

// LocalStorage keeps files directly under a single directory.
// Names are used verbatim as file names; see ValidateName for what is refused.
type LocalStorage struct {
	dir           string        // absolute path of the storage directory
	uploadTimeout time.Duration // zero means the caller's deadline applies
}

// LocalOption configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalUploadTimeout bounds the time a single Save may take.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.uploadTimeout = timeout
	}
}

// NewLocalStorage makes sure dir exists and returns a store rooted at it.
// Only the last path element is created; a missing parent is an error, as is
// an existing path that is not a directory.
func NewLocalStorage(dir string, opts ...LocalOption) (*LocalStorage, error) {
	if dir == "" {
		return nil, ErrInvalidConfig
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	info, err := os.Stat(absDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.Mkdir(absDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
		}
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, absDir)
	}

	s := &LocalStorage{dir: absDir}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Dir returns the absolute storage directory.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save streams r into a temporary file next to the target and renames it into
// place, so readers never observe a half-written file. A failed or cancelled
// write leaves the previous version (if any) untouched.
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader) (*Object, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrFailedToReadFile)
	}

	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*"+tempSuffix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	tmpPath := tmp.Name()
	discard := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	buf := make([]byte, 32*1024)
	for {
		if err := checkContext(ctx); err != nil {
			discard()
			return nil, err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			if _, writeErr := tmp.Write(buf[:n]); writeErr != nil {
				discard()
				return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			discard()
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}

	// CreateTemp uses 0600.
	if err := tmp.Chmod(0644); err != nil {
		discard()
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return s.stat(name, path)
}

// Stat returns metadata for the named file.
func (s *LocalStorage) Stat(ctx context.Context, name string) (*Object, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	return s.stat(name, path)
}

// List enumerates regular files in the storage directory. Subdirectories are
// skipped, as are entries that disappear between ReadDir and stat.
func (s *LocalStorage) List(ctx context.Context) ([]Object, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		if entry.IsDir() || isTempName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		objects = append(objects, newObject(entry.Name(), filepath.Join(s.dir, entry.Name()), info))
	}

	return objects, nil
}

// Open returns the file for reading. The returned reader is an *os.File and
// therefore also an io.ReadSeeker.
func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, *Object, error) {
	if err := checkContext(ctx); err != nil {
		return nil, nil, err
	}

	path, err := s.resolve(name)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.stat(name, path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}

	return f, obj, nil
}

// Delete removes a single file. Directories are refused.
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	if _, err := s.stat(name, path); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}

	return nil
}

// Ping checks that the storage directory is still a directory.
func (s *LocalStorage) Ping(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, s.dir)
	}
	return nil
}

// isTempName matches in-flight uploads created by Save.
func isTempName(name string) bool {
	return strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix)
}

func (s *LocalStorage) resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func (s *LocalStorage) stat(name, path string) (*Object, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, name)
	}

	obj := newObject(name, path, info)
	return &obj, nil
}

func newObject(name, path string, info fs.FileInfo) Object {
	return Object{
		Name:        name,
		Size:        info.Size(),
		ContentType: ContentTypeByName(name),
		CreatedAt:   birthTime(path, info),
		ModifiedAt:  info.ModTime(),
	}
}
