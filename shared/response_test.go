package shared

import (
	"encoding/json"
	"math"
	"sync"
	"testing"
)

func TestSuccessResponseSerialization(t *testing.T) {
	type expected struct {
		JSONRPC string `json:"jsonrpc"`
		ID      uint64 `json:"id"`
		Result  string `json:"result"`
	}

	res := NewSuccess(PointerTo(uint64(42)), "The answer")
	data, err := res.Bytes()
	if err != nil {
		t.Fatalf("Failed to serialize response: %v", err)
	}

	var got expected
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse serialized response: %v", err)
	}
	if got.JSONRPC != "2.0" {
		t.Errorf("Expected jsonrpc '2.0', got '%s'", got.JSONRPC)
	}
	if got.ID != 42 {
		t.Errorf("Expected id 42, got %d", got.ID)
	}
	if got.Result != "The answer" {
		t.Errorf("Expected result 'The answer', got '%s'", got.Result)
	}

	if string(data) != `{"jsonrpc":"2.0","id":42,"result":"The answer"}` {
		t.Errorf("Unexpected wire form: %s", data)
	}
}

func TestErrorResponseSerialization(t *testing.T) {
	type expectedError struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	type expected struct {
		JSONRPC string        `json:"jsonrpc"`
		ID      uint64        `json:"id"`
		Error   expectedError `json:"error"`
	}

	res := NewError(PointerTo(uint64(42)), InvalidParams)
	data, err := res.Bytes()
	if err != nil {
		t.Fatalf("Failed to serialize response: %v", err)
	}

	var got expected
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse serialized response: %v", err)
	}
	if got.Error.Code != -32602 {
		t.Errorf("Expected code -32602, got %d", got.Error.Code)
	}
	if got.Error.Message != "Invalid params" {
		t.Errorf("Expected message 'Invalid params', got '%s'", got.Error.Message)
	}

	if string(data) != `{"jsonrpc":"2.0","id":42,"error":{"code":-32602,"message":"Invalid params"}}` {
		t.Errorf("Unexpected wire form: %s", data)
	}
}

func TestNoIDResponseOmitsIDKey(t *testing.T) {
	payloads := []any{42, "text", nil, map[string]any{"a": 1}, []int{1, 2, 3}}
	for _, payload := range payloads {
		data, err := NewSuccess(nil, payload).Bytes()
		if err != nil {
			t.Fatalf("Failed to serialize response: %v", err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatalf("Failed to parse serialized response: %v", err)
		}
		if _, exists := fields["id"]; exists {
			t.Errorf("id key must be absent for notifications, got %s", data)
		}
	}
}

func TestResultAndErrorAreMutuallyExclusive(t *testing.T) {
	id := PointerTo(uint64(7))
	responses := []*Response{
		NewSuccess(id, "ok"),
		NewSuccess(id, nil),
		NewSuccess(nil, 1),
		NewError(id, InternalError),
		NewError(nil, Custom(100, "app failure", map[string]any{"detail": "x"})),
	}

	for _, res := range responses {
		data, err := res.Bytes()
		if err != nil {
			t.Fatalf("Failed to serialize response: %v", err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatalf("Failed to parse serialized response: %v", err)
		}
		_, hasResult := fields["result"]
		_, hasError := fields["error"]
		if hasResult == hasError {
			t.Errorf("Exactly one of result/error must be present, got %s", data)
		}
	}
}

func TestStandardErrorsAreStable(t *testing.T) {
	cases := []struct {
		rpcErr  *JSONRPCError
		code    int
		message string
	}{
		{ParseError, -32700, "Parse error"},
		{InvalidRequest, -32600, "Invalid Request"},
		{MethodNotFound, -32601, "Method not found"},
		{InvalidParams, -32602, "Invalid params"},
		{InternalError, -32603, "Internal error"},
	}

	// Standard errors are shared singletons; building other responses
	// concurrently must not affect what they serialize to.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := uint64(n*100 + j)
				_, _ = NewError(&id, Custom(1000+n, "app error", j)).Bytes()
				_, _ = NewSuccess(&id, j).Bytes()
			}
		}(i)
	}
	wg.Wait()

	for _, tc := range cases {
		data, err := NewError(PointerTo(uint64(1)), tc.rpcErr).Bytes()
		if err != nil {
			t.Fatalf("Failed to serialize response: %v", err)
		}
		var got struct {
			Error struct {
				Code    int             `json:"code"`
				Message string          `json:"message"`
				Data    json.RawMessage `json:"data"`
			} `json:"error"`
		}
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Failed to parse serialized response: %v", err)
		}
		if got.Error.Code != tc.code {
			t.Errorf("Expected code %d, got %d", tc.code, got.Error.Code)
		}
		if got.Error.Message != tc.message {
			t.Errorf("Expected message '%s', got '%s'", tc.message, got.Error.Message)
		}
		if got.Error.Data != nil {
			t.Errorf("Standard errors must not carry data, got %s", got.Error.Data)
		}
	}
}

func TestErrorDataOmittedWhenAbsent(t *testing.T) {
	data, err := NewError(nil, Custom(1234, "boom", nil)).Bytes()
	if err != nil {
		t.Fatalf("Failed to serialize response: %v", err)
	}
	var got struct {
		Error map[string]json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse serialized response: %v", err)
	}
	if _, exists := got.Error["data"]; exists {
		t.Errorf("data key must be absent when no data is set, got %s", data)
	}

	data, err = NewError(nil, Custom(1234, "boom", map[string]any{"hint": "retry"})).Bytes()
	if err != nil {
		t.Fatalf("Failed to serialize response: %v", err)
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse serialized response: %v", err)
	}
	if _, exists := got.Error["data"]; !exists {
		t.Errorf("data key must be present when data is set, got %s", data)
	}
}

func TestSerializationFailureSurfaces(t *testing.T) {
	badPayloads := []any{
		math.Inf(1),
		math.NaN(),
		make(chan int),
		func() {},
	}
	for _, payload := range badPayloads {
		if _, err := NewSuccess(nil, payload).Bytes(); err == nil {
			t.Errorf("Expected serialization error for payload %T", payload)
		}
	}

	if _, err := NewError(nil, Custom(1, "bad data", math.Inf(-1))).Bytes(); err == nil {
		t.Error("Expected serialization error for non-finite error data")
	}
}
