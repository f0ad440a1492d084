package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*options)

type options struct {
	files       []string
	prefix      string
	environment map[string]string
}

// WithEnvFiles replaces the default ".env" with the given dotenv files.
// Missing files are skipped; variables already set in the process win.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithPrefix requires every variable name to start with prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from vars instead of the process environment.
// Dotenv files are not read in this mode.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
	}
}

// Load reads dotenv files into the process environment and parses T from it
// using `env` and `envDefault` struct tags.
//
//	cfg, err := config.Load[images.Config]()
func Load[T any](opts ...Option) (T, error) {
	o := &options{files: []string{".env"}}
	for _, opt := range opts {
		opt(o)
	}

	var cfg T

	if o.environment == nil {
		for _, file := range o.files {
			if err := godotenv.Load(file); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return cfg, fmt.Errorf("%w: %s: %v", ErrLoadingEnvFile, file, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}

	return cfg, nil
}

// MustLoad is Load that panics on error. Intended for main.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
