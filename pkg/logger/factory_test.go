package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/svgstore/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))

		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))

		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))

		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("static attributes and context extractors", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithAttr(slog.String("svc", "test")),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(ctxKey{}).(string)
				return slog.String("trace", v), ok
			}),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
		log.InfoContext(ctx, "with ctx")
		entry := decode(t, buf)
		assert.Equal(t, "test", entry["svc"])
		assert.Equal(t, "abc", entry["trace"])

		buf.Reset()
		log.With(slog.Int("n", 1)).InfoContext(context.Background(), "no ctx value")
		entry = decode(t, buf)
		assert.NotContains(t, entry, "trace")
		assert.EqualValues(t, 1, entry["n"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("production is json at info", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "svgstore"), logger.WithOutput(buf))

		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("shown")
		entry := decode(t, buf)
		assert.Equal(t, "svgstore", entry["service"])
		assert.Equal(t, logger.EnvProduction, entry["env"])
	})

	t.Run("staging", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("stage", ""), logger.WithOutput(buf))

		log.Info("shown")
		entry := decode(t, buf)
		assert.Equal(t, logger.EnvStaging, entry["env"])
		assert.NotContains(t, entry, "service")
	})

	t.Run("unknown falls back to development", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("local", "svgstore"), logger.WithOutput(buf))

		log.Debug("visible")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "env=development")
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("loud")
	assert.ErrorIs(t, err, logger.ErrInvalidLevel)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides preset", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log, err := logger.NewFromConfig(logger.Config{
			Env:    "development",
			Level:  "warn",
			Format: "json",
		}, "svgstore", logger.WithOutput(buf))
		require.NoError(t, err)

		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		entry := decode(t, buf)
		assert.Equal(t, "development", entry["env"])
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		_, err := logger.NewFromConfig(logger.Config{Level: "loud"}, "svgstore")
		assert.ErrorIs(t, err, logger.ErrInvalidLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()
		_, err := logger.NewFromConfig(logger.Config{Format: "xml"}, "svgstore")
		assert.ErrorIs(t, err, logger.ErrInvalidFormat)
	})
}
