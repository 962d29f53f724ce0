package examplemethods

import (
	"context"
	"encoding/json"

	"github.com/rpcwire/rpcwire/server"
	"github.com/rpcwire/rpcwire/shared"
	"go.uber.org/zap"
)

// BuildOptions returns the server options registering the example methods.
func BuildOptions(logger *zap.Logger) []server.ServerOption {
	return []server.ServerOption{
		server.WithMethod("echo", echoHandler),
		server.WithMethod("sum", sumHandler(logger)),
		server.WithStatusEndpoint(""),
	}
}

// echo returns its params verbatim, or null when called without params.
func echoHandler(ctx context.Context, params *json.RawMessage) (any, error) {
	if params == nil {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal(*params, &value); err != nil {
		return nil, shared.InvalidParams
	}
	return value, nil
}

// sum adds a list of numbers: params [1,2,3] -> 6.
func sumHandler(logger *zap.Logger) func(ctx context.Context, params *json.RawMessage) (any, error) {
	return func(ctx context.Context, params *json.RawMessage) (any, error) {
		if params == nil {
			return nil, shared.InvalidParams
		}
		var terms []float64
		if err := json.Unmarshal(*params, &terms); err != nil {
			return nil, shared.InvalidParams
		}
		total := 0.0
		for _, term := range terms {
			total += term
		}
		logger.Debug("Computed sum", zap.Int("terms", len(terms)), zap.Float64("total", total))
		return total, nil
	}
}
