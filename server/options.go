package server

import (
	"errors"

	"github.com/rpcwire/rpcwire/server/rpc"
	"github.com/rpcwire/rpcwire/server/transport"
)

// WithListenAddr overrides the listen address from the configuration.
func WithListenAddr(addr string) ServerOption {
	return func(b *ServerBuilder) error {
		if addr == "" {
			return errors.New("listen address cannot be empty")
		}
		b.listenAddr = addr
		return nil
	}
}

// WithMethod is a server option to register a JSON-RPC method handler.
func WithMethod(method string, handler rpc.HandlerFunc) ServerOption {
	return func(b *ServerBuilder) error {
		return b.router.Register(method, handler)
	}
}

// WithRPCPath overrides the endpoint path for JSON-RPC requests.
func WithRPCPath(path string) ServerOption {
	return func(b *ServerBuilder) error {
		b.transportOptions = append(b.transportOptions, transport.WithRPCPath(path))
		return nil
	}
}

// WithoutThrottling disables per-client rate limiting.
func WithoutThrottling() ServerOption {
	return func(b *ServerBuilder) error {
		b.transportOptions = append(b.transportOptions, transport.WithoutThrottling())
		return nil
	}
}

// WithStatusEndpoint registers a status endpoint at path ("/status" when
// empty).
func WithStatusEndpoint(path string) ServerOption {
	return func(b *ServerBuilder) error {
		if path == "" {
			path = "/status"
		}
		if path[0] != '/' {
			return errors.New("status path must start with '/'")
		}
		b.statusPath = path
		return nil
	}
}
