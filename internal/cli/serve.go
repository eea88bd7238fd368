package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/puppet/pkg/adapters/http"
)

// ServeOptions configures the HTTP surface.
type ServeOptions struct {
	Addr string
	// Greet plays the greeting once the server is up.
	Greet bool
}

// Serve runs the engine behind the HTTP adapter until ctx ends, then shuts down gracefully.
func Serve(ctx context.Context, stack *Stack, opts ServeOptions) error {
	logger := stack.Logger
	engine := stack.Engine

	if err := engine.Preload(ctx); err != nil {
		// Missing clips are skipped at play time; the server still starts.
		logger.Warn("Preload incomplete", "err", err)
	}

	runCtx, stopEngine := context.WithCancel(ctx)
	defer stopEngine()
	engineErr := make(chan error, 1)
	go func() { engineErr <- engine.Run(runCtx) }()

	if opts.Greet {
		if err := engine.Start(ctx); err != nil {
			return fmt.Errorf("error starting greeting: %w", err)
		}
	}

	handler := httpAdapter.NewHandler(engine,
		httpAdapter.WithEvents(stack.Events),
		httpAdapter.WithMetrics(stack.Registry),
		httpAdapter.WithLogger(logger),
	)
	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP Server listening", "address", opts.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case err := <-engineErr:
		return fmt.Errorf("engine stopped: %w", err)
	case <-ctx.Done():
		// SSE streams never finish on their own; Shutdown waits for their request contexts.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			logger.Warn("Forced server close", "err", err)
		}
	}

	stopEngine()
	return <-engineErr
}
