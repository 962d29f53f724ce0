package shared

import (
	"errors"
	"fmt"
)

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`           // Error type code
	Message string `json:"message"`        // Short error description
	Data    any    `json:"data,omitempty"` // Additional error information
}

// Error implements the Go error interface for JSONRPCError.
func (e *JSONRPCError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Standard protocol errors. One shared instance per kind for the whole
// process, never mutated after init. The dispatch/parsing layer picks which
// one applies; this package only encodes them.
var (
	ParseError     = &JSONRPCError{Code: JSONRPCErrorParseError, Message: "Parse error"}
	InvalidRequest = &JSONRPCError{Code: JSONRPCErrorInvalidRequest, Message: "Invalid Request"}
	MethodNotFound = &JSONRPCError{Code: JSONRPCErrorMethodNotFound, Message: "Method not found"}
	InvalidParams  = &JSONRPCError{Code: JSONRPCErrorInvalidParams, Message: "Invalid params"}
	InternalError  = &JSONRPCError{Code: JSONRPCErrorInternal, Message: "Internal error"}
)

// Custom builds an application-level error. Codes inside [-32768, -32000]
// are reserved for the protocol and should not be used here.
func Custom(code int, message string, data any) *JSONRPCError {
	return &JSONRPCError{Code: code, Message: message, Data: data}
}

// NewJSONRPCError converts any Go error into a JSON-RPC error object.
// A *JSONRPCError anywhere in the chain passes through unchanged, everything
// else becomes an internal error carrying the original message.
func NewJSONRPCError(err error) *JSONRPCError {
	if err == nil {
		return nil
	}
	var rpcErr *JSONRPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &JSONRPCError{
		Code:    JSONRPCErrorInternal,
		Message: err.Error(),
	}
}
