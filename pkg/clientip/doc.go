// Package clientip resolves the originating client address of a request that
// may have passed through reverse proxies.
//
// Headers are checked in order (CF-Connecting-IP, True-Client-IP, X-Real-IP,
// X-Forwarded-For) and the first valid address wins; RemoteAddr is the
// fallback. Only enable it behind proxies that overwrite these headers.
//
//	r := chi.NewRouter()
//	r.Use(clientip.Middleware())
//
//	ip := clientip.FromContext(r.Context())
package clientip
