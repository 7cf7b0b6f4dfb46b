// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run binds the listener first, fires start hooks, and serves until the
// context is cancelled or SIGINT/SIGTERM arrives. Shutdown then drains
// in-flight requests within the configured timeout and runs stop hooks:
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(context.Context) { pool.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Liveness and Readiness return probe handlers; readiness runs named checks
// such as pg.Healthcheck and redis.Healthcheck with the request context.
package httpserver
