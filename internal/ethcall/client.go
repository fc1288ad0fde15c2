// Package ethcall performs read-only EVM contract calls over JSON-RPC.
package ethcall

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/rpcpool"
)

type Client struct {
	pool       *rpcpool.Pool
	httpClient *http.Client
	requestId  atomic.Int64
}

func NewClient(pool *rpcpool.Pool) *Client {
	return &Client{
		pool:       pool,
		httpClient: &http.Client{},
	}
}

type rpcRequest struct {
	JsonRpc string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	Id      int64         `json:"id"`
}

type rpcResponse struct {
	JsonRpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
	Id      int64           `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type callParams struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// Call executes eth_call against the pool and returns the raw return data
// together with the endpoint that served it.
func (c *Client) Call(ctx context.Context, to Address, data []byte) ([]byte, string, error) {
	request := rpcRequest{
		JsonRpc: "2.0",
		Method:  "eth_call",
		Params: []interface{}{
			callParams{To: to.Hex(), Data: "0x" + hex.EncodeToString(data)},
			"latest",
		},
		Id: c.requestId.Add(1),
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal eth_call request: %w", err)
	}

	return rpcpool.Execute(ctx, c.pool, func(ctx context.Context, endpoint string) ([]byte, error) {
		return c.post(ctx, endpoint, body)
	})
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := c.httpClient.Do(httpRequest)
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

	var resultHex string
	if err := json.Unmarshal(response.Result, &resultHex); err != nil {
		return nil, fmt.Errorf("eth_call result is not a hex string: %w", err)
	}
	returnData, err := hex.DecodeString(strings.TrimPrefix(resultHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("eth_call result is not valid hex: %w", err)
	}
	return returnData, nil
}
