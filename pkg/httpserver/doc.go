// Package httpserver runs an http.Handler with configurable timeouts and
// graceful shutdown.
//
// Run binds the listener first, so bind failures surface immediately as
// ErrStart, then serves until the context is cancelled, SIGINT or SIGTERM
// arrives, or Shutdown is called. Shutdown waits up to the configured timeout
// for in-flight requests.
//
//	cfg, _ := config.Load[httpserver.Config]()
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness (no checks) or readiness (with checks)
// as a small JSON document.
package httpserver
