package shared

import (
	"net/http"
)

const contentTypeJSON = "application/json"

// Reply is a finished transport response (status, headers, body bytes),
// ready to be written to a connection.
type Reply struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// WriteTo writes the reply onto an HTTP connection.
func (r *Reply) WriteTo(w http.ResponseWriter) error {
	for key, values := range r.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(r.StatusCode)
	_, err := w.Write(r.Body)
	return err
}

// Builder binds one request's correlation id so handler code can finish a
// response with a single call, whichever way the operation went. It holds
// only the id and is consumed by exactly one of Success, Error or FromResult.
type Builder struct {
	id *uint64
}

// NewBuilder creates a Builder for the given correlation id. The id is passed
// through verbatim from the parsed request; nil means notification.
func NewBuilder(id *uint64) Builder {
	return Builder{id: id}
}

// Success builds a success envelope around payload and wraps it in a
// transport reply. It fails only when payload cannot be serialized.
func (b Builder) Success(payload any) (*Reply, error) {
	return intoReply(NewSuccess(b.id, payload))
}

// Error builds a failure envelope around rpcErr and wraps it in a transport
// reply.
func (b Builder) Error(rpcErr *JSONRPCError) (*Reply, error) {
	return intoReply(NewError(b.id, rpcErr))
}

// FromResult is the primary entry point for handler code: it dispatches to
// Success or Error based on err, so callers never branch on the outcome
// themselves.
func (b Builder) FromResult(result any, err error) (*Reply, error) {
	if err != nil {
		return b.Error(NewJSONRPCError(err))
	}
	return b.Success(result)
}

// JSON-RPC reports failures inside the body; both outcomes ship as HTTP 200.
func intoReply(resp *Response) (*Reply, error) {
	body, err := resp.Bytes()
	if err != nil {
		return nil, err
	}
	header := make(http.Header, 1)
	header.Set("Content-Type", contentTypeJSON)
	return &Reply{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       body,
	}, nil
}
