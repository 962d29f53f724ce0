package shared

import (
	"bytes"
	"encoding/json"
)

// Request is a parsed inbound JSON-RPC 2.0 request. ID is nil for
// notifications, which expect no correlated reply.
type Request struct {
	JSONRPC string           `json:"jsonrpc"` // Must be "2.0"
	ID      *uint64          `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  *json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no correlation id.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// ParseRequest decodes a single request object. Malformed JSON maps to
// ParseError; a wrong version tag or missing method maps to InvalidRequest.
// Batch payloads are rejected: this server handles one request per call.
func ParseRequest(data []byte) (*Request, *JSONRPCError) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return nil, InvalidRequest
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, ParseError
	}
	if req.JSONRPC != JSONRPCVersion || req.Method == "" {
		return nil, InvalidRequest
	}
	return &req, nil
}
