package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rpcwire/rpcwire/shared"
	"go.uber.org/zap"
)

// HandlerFunc computes a method's result from its raw params. Returning a
// *shared.JSONRPCError selects that exact error on the wire; any other error
// is reported as an internal error.
type HandlerFunc func(ctx context.Context, params *json.RawMessage) (any, error)

// Router maps JSON-RPC method names to handlers. It decides which handler
// runs; how the outcome is encoded is entirely the shared.Builder's business.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

// NewRouter creates an empty method router.
func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		handlers: make(map[string]HandlerFunc),
		logger:   logger.Named("rpc"),
	}
}

// Register adds a handler for method. Registering the same method twice is
// an error.
func (r *Router) Register(method string, handler HandlerFunc) error {
	if method == "" {
		return errors.New("method name cannot be empty")
	}
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[method]; exists {
		return fmt.Errorf("method '%s' already registered", method)
	}
	r.handlers[method] = handler
	r.logger.Debug("Registered method", zap.String("method", method))
	return nil
}

// Dispatch runs the handler for req's method. An unknown method yields the
// standard MethodNotFound error.
func (r *Router) Dispatch(ctx context.Context, req *shared.Request) (any, error) {
	r.mu.RLock()
	handler, ok := r.handlers[req.Method]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("Method not found", zap.String("method", req.Method))
		return nil, shared.MethodNotFound
	}
	return handler(ctx, req.Params)
}

// Methods returns the registered method names, sorted.
func (r *Router) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	methods := make([]string, 0, len(r.handlers))
	for method := range r.handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}
