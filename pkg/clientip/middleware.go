package clientip

import "net/http"

// Option configures Middleware.
type Option func(*options)

type options struct {
	headers           []string
	rewriteRemoteAddr bool
}

// WithHeaders replaces the list of trusted proxy headers.
func WithHeaders(headers ...string) Option {
	return func(o *options) {
		o.headers = headers
	}
}

// WithRemoteAddrRewrite makes the middleware overwrite r.RemoteAddr with the
// resolved address, for handlers that only look there.
func WithRemoteAddrRewrite() Option {
	return func(o *options) {
		o.rewriteRemoteAddr = true
	}
}

// Middleware resolves the client address once per request and stores it in
// the request context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := options{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := resolve(r, o.headers)
			if ip != "" {
				if o.rewriteRemoteAddr {
					r.RemoteAddr = ip
				}
				r = r.WithContext(WithContext(r.Context(), ip))
			}
			next.ServeHTTP(w, r)
		})
	}
}
