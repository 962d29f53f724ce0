package server

import (
	"context"
	"net/http"

	"github.com/rpcwire/rpcwire/server/rpc"
	"github.com/rpcwire/rpcwire/server/transport"
	"github.com/rpcwire/rpcwire/shared/config"
	"go.uber.org/zap"
)

// ServerBuilder accumulates everything Start assembles: the method router,
// the HTTP mux, and the transport options chosen via ServerOption values.
type ServerBuilder struct {
	ctx        context.Context
	logger     *zap.Logger
	cfg        config.IConfig
	listenAddr string
	router     *rpc.Router
	mux        *http.ServeMux

	transportOptions []transport.TransportOption
	statusPath       string
}

// ServerOption defines a function type for configuring the ServerBuilder.
type ServerOption func(*ServerBuilder) error
