package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rpcwire/rpcwire/server/extra"
	"github.com/rpcwire/rpcwire/server/rpc"
	"github.com/rpcwire/rpcwire/server/transport"
	"github.com/rpcwire/rpcwire/shared/config"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Start assembles and starts the JSON-RPC server with the provided options.
// It returns a channel that carries listener errors occurring after startup;
// the server shuts down gracefully when ctx is cancelled.
func Start(ctx context.Context, logger *zap.Logger, cfg config.IConfig, options ...ServerOption) (
	<-chan error, // Listener error channel
	error,
) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	builder := &ServerBuilder{
		ctx:    ctx,
		logger: logger,
		cfg:    cfg,
		router: rpc.NewRouter(logger),
		mux:    http.NewServeMux(),
	}

	logger.Info("Applying server configuration options...")
	for _, option := range options {
		if err := option(builder); err != nil {
			return nil, fmt.Errorf("failed to apply server option: %w", err)
		}
	}

	transportInstance, err := transport.New(builder.router, logger, cfg, builder.transportOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	transportInstance.RegisterHandlers(builder.mux)

	if builder.statusPath != "" {
		builder.mux.HandleFunc(builder.statusPath, extra.StatusHandler(cfg, logger))
	}

	logger.Info("Server configured",
		zap.Strings("methods", builder.router.Methods()),
		zap.String("statusPath", builder.statusPath))

	server, errChan, err := transport.StartHTTPServer(ctx, logger, cfg, builder.mux, builder.listenAddr)
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		transport.ShutdownHTTPServer(shutdownCtx, logger, server)
	}()

	return errChan, nil
}
