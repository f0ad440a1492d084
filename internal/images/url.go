package images

import (
	"net/http"
	"net/url"
	"strings"
)

// publicURL builds the absolute URL a stored file is served under.
// The scheme honours TLS and X-Forwarded-Proto; the host is taken verbatim.
func publicURL(r *http.Request, publicPath, name string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host + publicPath + "/" + url.PathEscape(name)
}
