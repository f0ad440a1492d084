package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/svgstore/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, incoming string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		assert.Equal(t, seen, middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec, seen
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates id", func(t *testing.T) {
		t.Parallel()
		rec, id := serve(t, requestid.Middleware(), "")

		require.NotEmpty(t, id)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("keeps valid incoming id", func(t *testing.T) {
		t.Parallel()
		rec, id := serve(t, requestid.Middleware(), "req-123_abc")

		assert.Equal(t, "req-123_abc", id)
		assert.Equal(t, "req-123_abc", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces invalid incoming id", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{"a b", "a/b", "<script>", strings.Repeat("a", 129)} {
			_, id := serve(t, requestid.Middleware(requestid.WithGenerator(func() string { return "fresh" })), bad)
			assert.Equal(t, "fresh", id, "incoming %q", bad)
		}
	})

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()
		h := requestid.Middleware(requestid.WithHeader("X-Trace-ID"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "trace1", rec.Header().Get("X-Trace-ID"))
		assert.Empty(t, rec.Header().Get(requestid.Header))
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "abc", requestid.FromContext(requestid.WithContext(context.Background(), "abc")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
