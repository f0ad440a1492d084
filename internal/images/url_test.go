package images

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r *http.Request)
		file  string
		want  string
	}{
		{"plain http", func(*http.Request) {}, "a.svg", "http://example.com/images/a.svg"},
		{"tls", func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, "a.svg", "https://example.com/images/a.svg"},
		{"forwarded list", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "HTTPS, http") }, "a.svg", "https://example.com/images/a.svg"},
		{"escaped name", func(*http.Request) {}, "a b#1?.svg", "http://example.com/images/a%20b%231%3F.svg"},
		{"host with port", func(r *http.Request) { r.Host = "localhost:3000" }, "a.svg", "http://localhost:3000/images/a.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)
			assert.Equal(t, tt.want, publicURL(r, "/images", tt.file))
		})
	}
}
