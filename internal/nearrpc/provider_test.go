package nearrpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/rpcpool"
)

func nearServer(t *testing.T, handler func(method string, params json.RawMessage) (interface{}, *RpcError)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
			Id     int64           `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("malformed request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		result, rpcErr := handler(request.Method, request.Params)
		response := map[string]interface{}{"jsonrpc": "2.0", "id": request.Id}
		if rpcErr != nil {
			response["error"] = rpcErr
		} else {
			response["result"] = result
		}
		_ = json.NewEncoder(w).Encode(response)
	}))
}

func newTestProvider(t *testing.T, urls ...string) *Provider {
	t.Helper()
	pool, err := rpcpool.New(urls)
	if err != nil {
		t.Fatal(err)
	}
	return NewProvider(pool)
}

func TestCallFunction(t *testing.T) {
	server := nearServer(t, func(method string, params json.RawMessage) (interface{}, *RpcError) {
		if method != "query" {
			t.Errorf("method = %q, want query", method)
		}
		var query map[string]string
		if err := json.Unmarshal(params, &query); err != nil {
			t.Fatalf("params: %v", err)
		}
		if query["request_type"] != "call_function" {
			t.Errorf("request_type = %q", query["request_type"])
		}
		if query["account_id"] != "registry.testnet" {
			t.Errorf("account_id = %q", query["account_id"])
		}
		if query["method_name"] != "is_account_verified" {
			t.Errorf("method_name = %q", query["method_name"])
		}
		args, err := base64.StdEncoding.DecodeString(query["args_base64"])
		if err != nil || string(args) != `{"account_id":"alice.testnet"}` {
			t.Errorf("args_base64 decoded to %q (err %v)", args, err)
		}
		return map[string]interface{}{
			"result":       []byte("true"),
			"logs":         []string{},
			"block_height": 120,
			"block_hash":   "9f3Ab",
		}, nil
	})
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	result, endpoint, err := provider.CallFunction(context.Background(), "registry.testnet", "is_account_verified", []byte(`{"account_id":"alice.testnet"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint != server.URL {
		t.Errorf("endpoint = %q", endpoint)
	}
	if string(result.Result) != "true" {
		t.Errorf("result bytes = %q, want true", result.Result)
	}
	if result.BlockHeight != 120 || result.BlockHash != "9f3Ab" {
		t.Errorf("block metadata = %d/%q", result.BlockHeight, result.BlockHash)
	}
}

func TestCallFunctionDecodesNumericArray(t *testing.T) {
	// Nodes serialize the result bytes as a plain JSON number array.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"result":[104,105],"logs":[],"block_height":5,"block_hash":"h"}}`))
	}))
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	result, _, err := provider.CallFunction(context.Background(), "a.testnet", "get", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(result.Result) != "hi" {
		t.Errorf("result bytes = %q, want hi", result.Result)
	}
}

func TestViewAccessKey(t *testing.T) {
	server := nearServer(t, func(method string, params json.RawMessage) (interface{}, *RpcError) {
		var query map[string]string
		_ = json.Unmarshal(params, &query)
		if query["request_type"] != "view_access_key" {
			t.Errorf("request_type = %q", query["request_type"])
		}
		if !strings.HasPrefix(query["public_key"], "ed25519:") {
			t.Errorf("public_key = %q", query["public_key"])
		}
		return map[string]interface{}{
			"nonce":        88,
			"block_height": 300,
			"block_hash":   "F7xq2",
			"permission":   "FullAccess",
		}, nil
	})
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	view, err := provider.ViewAccessKey(context.Background(), "writer.testnet", "ed25519:abc")
	if err != nil {
		t.Fatal(err)
	}
	if view.Nonce != 88 {
		t.Errorf("nonce = %d, want 88", view.Nonce)
	}
	if view.BlockHash != "F7xq2" {
		t.Errorf("block hash = %q", view.BlockHash)
	}
}

func TestBroadcastTxAsync(t *testing.T) {
	signedTx := []byte{1, 2, 3, 4}
	server := nearServer(t, func(method string, params json.RawMessage) (interface{}, *RpcError) {
		if method != "broadcast_tx_async" {
			t.Errorf("method = %q", method)
		}
		var positional []string
		if err := json.Unmarshal(params, &positional); err != nil || len(positional) != 1 {
			t.Fatalf("params = %s (err %v)", params, err)
		}
		raw, err := base64.StdEncoding.DecodeString(positional[0])
		if err != nil || string(raw) != string(signedTx) {
			t.Errorf("broadcast payload = %x (err %v)", raw, err)
		}
		return "4usoPHarBpUHnwJbJsTEmvts66WjEcKJec9rBUiUVrqp", nil
	})
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	hash, err := provider.BroadcastTxAsync(context.Background(), signedTx)
	if err != nil {
		t.Fatal(err)
	}
	if hash != "4usoPHarBpUHnwJbJsTEmvts66WjEcKJec9rBUiUVrqp" {
		t.Errorf("tx hash = %q", hash)
	}
}

func TestContractPanicTextSurvivesInError(t *testing.T) {
	server := nearServer(t, func(method string, params json.RawMessage) (interface{}, *RpcError) {
		return nil, &RpcError{
			Name:    "HANDLER_ERROR",
			Code:    -32000,
			Message: "Server error",
			Data:    json.RawMessage(`"Smart contract panicked: Identity already used"`),
		}
	})
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	_, _, err := provider.CallFunction(context.Background(), "registry.testnet", "store_verification", nil)
	if err == nil {
		t.Fatal("expected contract panic error")
	}
	if !strings.Contains(err.Error(), "Identity already used") {
		t.Errorf("panic text lost from error: %v", err)
	}
}

func TestProviderFailsOver(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dead.Close()
	alive := nearServer(t, func(method string, params json.RawMessage) (interface{}, *RpcError) {
		return map[string]interface{}{"result": []byte{}, "logs": []string{}, "block_height": 1, "block_hash": "h"}, nil
	})
	defer alive.Close()

	provider := newTestProvider(t, dead.URL, alive.URL)
	_, endpoint, err := provider.CallFunction(context.Background(), "a.testnet", "get", nil)
	if err != nil {
		t.Fatal(err)
	}
	if endpoint != alive.URL {
		t.Errorf("endpoint = %q, want %q", endpoint, alive.URL)
	}
}
