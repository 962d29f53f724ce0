package transport

import (
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/rpcwire/rpcwire/server/rpc"
	"github.com/rpcwire/rpcwire/shared"
	"github.com/rpcwire/rpcwire/shared/config"
	"go.uber.org/zap"
)

const (
	// RPCPath is the default endpoint path for JSON-RPC requests.
	RPCPath = "/rpc"
)

// Transport serves JSON-RPC 2.0 over HTTP: one POST per request, and the
// response always ships with status 200 whether the method succeeded or
// failed. The only exceptions are notifications (202, nothing to correlate a
// reply with) and encoding failures (500, no valid body can be produced).
type Transport struct {
	router   *rpc.Router
	logger   *zap.Logger
	config   config.IConfig
	throttle *Throttle
	rpcPath  string
}

// TransportOption defines a function type for configuring the Transport.
type TransportOption func(*Transport) error

// WithRPCPath overrides the endpoint path.
func WithRPCPath(path string) TransportOption {
	return func(t *Transport) error {
		if path == "" || path[0] != '/' {
			return errors.New("rpc path must start with '/'")
		}
		t.rpcPath = path
		return nil
	}
}

// WithoutThrottling disables per-client rate limiting regardless of config.
func WithoutThrottling() TransportOption {
	return func(t *Transport) error {
		t.throttle = nil
		return nil
	}
}

// New creates a new JSON-RPC HTTP transport handler.
func New(router *rpc.Router, logger *zap.Logger, cfg config.IConfig, options ...TransportOption) (*Transport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if router == nil {
		return nil, errors.New("router cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	rps, err := cfg.ThrottlingRPS()
	if err != nil {
		return nil, err
	}
	rpm, err := cfg.ThrottlingRPM()
	if err != nil {
		return nil, err
	}

	transport := &Transport{
		router:  router,
		logger:  logger.Named("transport"),
		config:  cfg,
		rpcPath: RPCPath,
	}
	if rps > 0 || rpm > 0 {
		transport.throttle = NewThrottle(rps, rpm)
	}

	for _, option := range options {
		if err := option(transport); err != nil {
			return nil, err
		}
	}
	return transport, nil
}

// RegisterHandlers attaches the transport's endpoints to mux.
func (t *Transport) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc(t.rpcPath, t.handleRPC)
}

func (t *Transport) handleRPC(w http.ResponseWriter, r *http.Request) {
	logger := t.logger.With(zap.String("remoteAddr", r.RemoteAddr))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", zap.Error(err))
		reply, buildErr := shared.NewBuilder(nil).Error(shared.ParseError)
		t.writeReply(w, logger, reply, buildErr)
		return
	}
	defer r.Body.Close()

	req, rpcErr := shared.ParseRequest(bodyBytes)
	if rpcErr != nil {
		logger.Warn("Rejected malformed request", zap.Int("code", rpcErr.Code))
		reply, buildErr := shared.NewBuilder(nil).Error(rpcErr)
		t.writeReply(w, logger, reply, buildErr)
		return
	}

	builder := shared.NewBuilder(req.ID)

	if t.throttle != nil && !t.throttle.Allow(clientAddr(r)) {
		logger.Warn("Throttling limit exceeded", zap.String("method", req.Method))
		reply, buildErr := builder.Error(shared.Custom(shared.JSONRPCErrorServerError, "Too many requests", nil))
		t.writeReply(w, logger, reply, buildErr)
		return
	}

	result, handlerErr := t.router.Dispatch(r.Context(), req)

	if req.IsNotification() {
		// Nothing to correlate a reply with; acknowledge receipt only.
		if handlerErr != nil {
			logger.Warn("Notification handler failed", zap.String("method", req.Method), zap.Error(handlerErr))
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	reply, buildErr := builder.FromResult(result, handlerErr)
	t.writeReply(w, logger, reply, buildErr)
}

// writeReply writes a finished reply. An encoding failure means no valid
// JSON-RPC body exists, which maps to a plain HTTP 500.
func (t *Transport) writeReply(w http.ResponseWriter, logger *zap.Logger, reply *shared.Reply, err error) {
	if err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if writeErr := reply.WriteTo(w); writeErr != nil {
		logger.Error("Failed to write response", zap.Error(writeErr))
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
