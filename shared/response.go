package shared

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Response is one JSON-RPC 2.0 response envelope: protocol version tag,
// optional correlation id, and exactly one of result/error. It is built once
// per inbound request, serialized, and discarded; it is never mutated after
// construction.
type Response struct {
	id     *uint64
	result any
	rpcErr *JSONRPCError
	isErr  bool
}

// NewSuccess creates a success envelope. payload may be any JSON-serializable
// value, including nil (which serializes as "result":null).
func NewSuccess(id *uint64, payload any) *Response {
	return &Response{id: id, result: payload}
}

// NewError creates a failure envelope carrying rpcErr.
func NewError(id *uint64, rpcErr *JSONRPCError) *Response {
	return &Response{id: id, rpcErr: rpcErr, isErr: true}
}

// IsError reports which outcome variant the envelope carries.
func (r *Response) IsError() bool {
	return r.isErr
}

// successResponse and errorResponse are the wire shapes. Field order matters
// to clients: jsonrpc, id, then the outcome key. A nil id drops the id key
// entirely, it must never be serialized as null.
type successResponse struct {
	JSONRPC string  `json:"jsonrpc"`
	ID      *uint64 `json:"id,omitempty"`
	Result  any     `json:"result"`
}

type errorResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      *uint64       `json:"id,omitempty"`
	Error   *JSONRPCError `json:"error"`
}

// MarshalJSON selects the wire shape from the outcome variant, so a response
// can never carry both result and error, and never neither.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r.isErr {
		if r.rpcErr == nil {
			return nil, errors.New("error response without error object")
		}
		return json.Marshal(errorResponse{JSONRPC: JSONRPCVersion, ID: r.id, Error: r.rpcErr})
	}
	return json.Marshal(successResponse{JSONRPC: JSONRPCVersion, ID: r.id, Result: r.result})
}

// Bytes serializes the envelope to UTF-8 JSON text. It fails only when the
// embedded payload or error data cannot be represented as JSON (non-finite
// floats, channels, cycles); that failure is surfaced, never repaired.
func (r *Response) Bytes() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return data, nil
}
