// Package nearrpc is a minimal NEAR JSON-RPC client for the contract calls
// the verification pipeline needs: view calls, access key lookup and
// fire-and-forget transaction broadcast. Every request goes through the
// failover pool.
package nearrpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/rpcpool"
)

// Finality selects which block state view queries read from.
type Finality string

const (
	FinalityOptimistic Finality = "optimistic"
	FinalityFinal      Finality = "final"
)

type Provider struct {
	pool       *rpcpool.Pool
	httpClient *http.Client
	finality   Finality
	requestId  atomic.Int64
}

type ProviderOption func(*Provider)

func WithFinality(finality Finality) ProviderOption {
	return func(p *Provider) {
		p.finality = finality
	}
}

func NewProvider(pool *rpcpool.Pool, options ...ProviderOption) *Provider {
	provider := &Provider{
		pool:       pool,
		httpClient: &http.Client{},
		finality:   FinalityOptimistic,
	}
	for _, option := range options {
		option(provider)
	}
	return provider
}

type rpcRequest struct {
	JsonRpc string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	Id      int64       `json:"id"`
}

type rpcResponse struct {
	JsonRpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RpcError       `json:"error,omitempty"`
	Id      int64           `json:"id"`
}

// RpcError keeps the node's cause and data blobs verbatim. Contract panics
// arrive inside them and the error translator matches on that text. Callers
// that need to tell a node-reported failure from transport noise can pull it
// back out of a wrapped error with errors.As.
type RpcError struct {
	Name    string          `json:"name,omitempty"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Cause   json.RawMessage `json:"cause,omitempty"`
}

func (e *RpcError) Error() string {
	parts := []string{fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)}
	if e.Name != "" {
		parts = append(parts, e.Name)
	}
	if len(e.Data) > 0 {
		parts = append(parts, string(e.Data))
	}
	if len(e.Cause) > 0 {
		parts = append(parts, string(e.Cause))
	}
	return strings.Join(parts, " ")
}

// ResultBytes carries a view call's return bytes. Nodes serialize them as a
// JSON array of numbers, which encoding/json will not map onto a plain
// []byte, so the array form gets its own unmarshaler. The base64 string form
// some proxies emit is accepted too.
type ResultBytes []byte

func (rb *ResultBytes) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var numbers []int16
		if err := json.Unmarshal(trimmed, &numbers); err != nil {
			return err
		}
		out := make([]byte, len(numbers))
		for i, n := range numbers {
			if n < 0 || n > 255 {
				return fmt.Errorf("result byte %d out of range: %d", i, n)
			}
			out[i] = byte(n)
		}
		*rb = out
		return nil
	}

	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("result is neither a byte array nor base64: %w", err)
	}
	*rb = decoded
	return nil
}

type CallFunctionResult struct {
	Result      ResultBytes `json:"result"`
	Logs        []string    `json:"logs"`
	BlockHeight uint64      `json:"block_height"`
	BlockHash   string      `json:"block_hash"`
}

type AccessKeyView struct {
	Nonce       uint64 `json:"nonce"`
	BlockHeight uint64 `json:"block_height"`
	BlockHash   string `json:"block_hash"`
}

// CallFunction runs a read-only contract method and returns its raw result.
func (p *Provider) CallFunction(ctx context.Context, accountId, methodName string, args []byte) (*CallFunctionResult, string, error) {
	params := map[string]interface{}{
		"request_type": "call_function",
		"finality":     string(p.finality),
		"account_id":   accountId,
		"method_name":  methodName,
		"args_base64":  base64.StdEncoding.EncodeToString(args),
	}
	var result CallFunctionResult
	endpoint, err := p.call(ctx, "query", params, &result)
	if err != nil {
		return nil, endpoint, err
	}
	return &result, endpoint, nil
}

// ViewAccessKey returns the current nonce and a recent block hash for a
// signer key, both needed to assemble a transaction.
func (p *Provider) ViewAccessKey(ctx context.Context, accountId, publicKey string) (*AccessKeyView, error) {
	params := map[string]interface{}{
		"request_type": "view_access_key",
		"finality":     string(p.finality),
		"account_id":   accountId,
		"public_key":   publicKey,
	}
	var view AccessKeyView
	if _, err := p.call(ctx, "query", params, &view); err != nil {
		return nil, err
	}
	if view.BlockHash == "" {
		return nil, fmt.Errorf("access key view for %s is missing a block hash", accountId)
	}
	return &view, nil
}

// BroadcastTxAsync submits a signed transaction without waiting for
// execution and returns the transaction hash the node assigned.
func (p *Provider) BroadcastTxAsync(ctx context.Context, signedTx []byte) (string, error) {
	params := []string{base64.StdEncoding.EncodeToString(signedTx)}
	var txHash string
	if _, err := p.call(ctx, "broadcast_tx_async", params, &txHash); err != nil {
		return "", err
	}
	if txHash == "" {
		return "", fmt.Errorf("node returned an empty transaction hash")
	}
	return txHash, nil
}

func (p *Provider) call(ctx context.Context, method string, params, result interface{}) (string, error) {
	body, err := json.Marshal(rpcRequest{
		JsonRpc: "2.0",
		Method:  method,
		Params:  params,
		Id:      p.requestId.Add(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	raw, endpoint, err := rpcpool.Execute(ctx, p.pool, func(ctx context.Context, endpoint string) (json.RawMessage, error) {
		return p.post(ctx, endpoint, body)
	})
	if err != nil {
		return endpoint, err
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return endpoint, fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return endpoint, nil
}

func (p *Provider) post(ctx context.Context, endpoint string, body []byte) (json.RawMessage, error) {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := p.httpClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status %d", httpResponse.StatusCode)
	}

	var response rpcResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	return response.Result, nil
}
