package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"job104-crawler/internal/observability"
)

// SignalContext is cancelled on SIGINT or SIGTERM. After the first signal the
// default handling is restored, so a second Ctrl+C kills the process. The
// returned stop func releases the signal handler.
func SignalContext(parent context.Context, logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			signal.Stop(sigChan)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
