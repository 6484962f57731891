// Package httpserver runs an http.Server with graceful shutdown.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives and then drains in-flight requests within the shutdown timeout.
// Construction goes through New or NewFromConfig plus Option helpers such as
// WithAddr and WithLogger. Errors wrap ErrStart or ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
