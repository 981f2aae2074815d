package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// BridgeConnector implements Connector against a wallet bridge: a small
// service next to the user's browser that owns the wallet kit and forwards
// address and signing requests to the selected wallet.
type BridgeConnector struct {
	baseURL    string
	httpClient *http.Client
}

func NewBridgeConnector(baseURL string, timeout time.Duration) *BridgeConnector {
	return &BridgeConnector{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type addressResponse struct {
	Address string `json:"address"`
}

type signRequest struct {
	XDR               string `json:"xdr"`
	NetworkPassphrase string `json:"networkPassphrase"`
	Address           string `json:"address,omitempty"`
}

type signResponse struct {
	SignedTxXDR string `json:"signedTxXdr"`
}

type bridgeError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *BridgeConnector) Address(ctx context.Context, moduleID string) (string, error) {
	var out addressResponse
	if err := c.post(ctx, "/wallets/"+url.PathEscape(moduleID)+"/address", nil, &out); err != nil {
		return "", err
	}
	if out.Address == "" {
		return "", errors.New("wallet returned no address")
	}
	return out.Address, nil
}

func (c *BridgeConnector) SignTransaction(ctx context.Context, xdr string, opts SignOptions) (string, error) {
	var out signResponse
	err := c.post(ctx, "/sign", signRequest{
		XDR:               xdr,
		NetworkPassphrase: opts.NetworkPassphrase,
		Address:           opts.Address,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.SignedTxXDR == "" {
		return "", errors.New("wallet returned an empty signed transaction")
	}
	return out.SignedTxXDR, nil
}

func (c *BridgeConnector) Disconnect(ctx context.Context, address string) error {
	return c.post(ctx, "/wallets/disconnect", map[string]string{"address": address}, nil)
}

func (c *BridgeConnector) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode wallet bridge request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build wallet bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wallet bridge unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read wallet bridge response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var be bridgeError
		if json.Unmarshal(raw, &be) == nil {
			if be.Message != "" {
				return errors.New(be.Message)
			}
			if be.Error != "" {
				return errors.New(be.Error)
			}
		}
		return fmt.Errorf("wallet bridge returned status %d", resp.StatusCode)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode wallet bridge response: %w", err)
	}
	return nil
}
