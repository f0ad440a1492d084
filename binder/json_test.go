package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/svgstore/binder"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	type request struct {
		Name string `json:"name"`
	}

	newRequest := func(contentType, body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(newRequest("application/json; charset=utf-8", `{"name":"logo.svg"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "logo.svg", req.Name)
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"missing content type", "", `{"name":"a"}`, binder.ErrMissingContentType},
		{"wrong media type", "text/plain", `{"name":"a"}`, binder.ErrUnsupportedMediaType},
		{"unknown field", "application/json", `{"name":"a","extra":1}`, binder.ErrFailedToParseJSON},
		{"empty body", "application/json", ``, binder.ErrFailedToParseJSON},
		{"trailing data", "application/json", `{"name":"a"}{"name":"b"}`, binder.ErrFailedToParseJSON},
		{"syntax error", "application/json", `{"name":`, binder.ErrFailedToParseJSON},
		{"too large", "application/json", `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, binder.ErrFailedToParseJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req request
			err := binder.JSON()(newRequest(tt.contentType, tt.body), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
