package acta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"actavc/internal/platform/tracer"
	"actavc/internal/wallet"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/circuit"
)

const maxResponseBytes = 1 << 20

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClientConfig configures an HTTPClient.
type HTTPClientConfig struct {
	BaseURL    string
	APIKey     string
	ContractID string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Breaker    *circuit.Breaker
	Tracer     tracer.Tracer
	Metrics    *Metrics
	Logger     *slog.Logger
}

// HTTPClient implements Client against the vault REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	contractID string
	client     HTTPDoer
	breaker    *circuit.Breaker
	tracer     tracer.Tracer
	metrics    *Metrics
	logger     *slog.Logger
}

func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		contractID: cfg.ContractID,
		client:     cfg.HTTPClient,
		breaker:    cfg.Breaker,
		tracer:     cfg.Tracer,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: cfg.Timeout}
	}
	if c.tracer == nil {
		c.tracer = tracer.NewNoop()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

type prepareResponse struct {
	UnsignedXDR       string `json:"unsignedXdr"`
	NetworkPassphrase string `json:"networkPassphrase"`
}

type submitRequest struct {
	SignedXDR         string `json:"signedXdr"`
	NetworkPassphrase string `json:"networkPassphrase"`
}

func (c *HTTPClient) Issue(ctx context.Context, req IssueRequest) (*TxResult, error) {
	body := map[string]any{
		"owner":     req.Owner,
		"vcId":      req.VCID,
		"vcData":    req.VCData,
		"issuer":    req.Issuer,
		"issuerDid": req.IssuerDID,
	}
	return c.transact(ctx, "issue", "/credentials/issue/prepare", body, req.Sign,
		tracer.String("owner", tracer.HashAddress(req.Owner)),
		tracer.String("vc_id", req.VCID),
	)
}

func (c *HTTPClient) CreateVault(ctx context.Context, req CreateVaultRequest) (*TxResult, error) {
	body := map[string]any{
		"owner":    req.Owner,
		"ownerDid": req.OwnerDID,
	}
	return c.transact(ctx, "create_vault", "/vault/create/prepare", body, req.Sign,
		tracer.String("owner", tracer.HashAddress(req.Owner)),
	)
}

func (c *HTTPClient) AuthorizeIssuer(ctx context.Context, req AuthorizeIssuerRequest) (*TxResult, error) {
	body := map[string]any{
		"owner":  req.Owner,
		"issuer": req.Issuer,
	}
	return c.transact(ctx, "authorize_issuer", "/vault/authorize-issuer/prepare", body, req.Sign,
		tracer.String("owner", tracer.HashAddress(req.Owner)),
		tracer.String("issuer", tracer.HashAddress(req.Issuer)),
	)
}

func (c *HTTPClient) ListVCIDs(ctx context.Context, owner string) ([]string, error) {
	var out struct {
		VCIDs []string `json:"vcIds"`
	}
	err := c.guard(ctx, "list_vc_ids", func(ctx context.Context) error {
		return c.post(ctx, "/vault/list-vc-ids", c.withContract(map[string]any{"owner": owner}), &out)
	}, tracer.String("owner", tracer.HashAddress(owner)))
	if err != nil {
		return nil, err
	}
	if out.VCIDs == nil {
		return []string{}, nil
	}
	return out.VCIDs, nil
}

func (c *HTTPClient) GetVC(ctx context.Context, ref VCRef) (json.RawMessage, error) {
	var out struct {
		VC json.RawMessage `json:"vc"`
	}
	err := c.guard(ctx, "get_vc", func(ctx context.Context) error {
		return c.post(ctx, "/vault/get-vc", c.withContract(refBody(ref)), &out)
	}, tracer.String("owner", tracer.HashAddress(ref.Owner)), tracer.String("vc_id", ref.VCID))
	if err != nil {
		return nil, err
	}
	if len(out.VC) == 0 {
		return json.RawMessage("null"), nil
	}
	return out.VC, nil
}

func (c *HTTPClient) VerifyVC(ctx context.Context, ref VCRef) (map[string]any, error) {
	var out map[string]any
	err := c.guard(ctx, "verify_vc", func(ctx context.Context) error {
		return c.post(ctx, "/vault/verify-vc", c.withContract(refBody(ref)), &out)
	}, tracer.String("owner", tracer.HashAddress(ref.Owner)), tracer.String("vc_id", ref.VCID))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Health probes the API for readiness checks. It bypasses the breaker.
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("vault API health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("vault API unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// transact runs prepare, sign and submit for one transaction operation.
func (c *HTTPClient) transact(ctx context.Context, operation, preparePath string, body map[string]any, sign wallet.Signer, attrs ...tracer.Attribute) (*TxResult, error) {
	if sign == nil {
		return nil, dErrors.New(dErrors.CodePrecondition, "Signer unavailable")
	}

	var result TxResult
	err := c.guard(ctx, operation, func(ctx context.Context) error {
		var prepared prepareResponse
		if err := c.post(ctx, preparePath, c.withContract(body), &prepared); err != nil {
			return err
		}
		if prepared.UnsignedXDR == "" {
			return errors.New("vault API returned an empty transaction")
		}
		passphrase := prepared.NetworkPassphrase
		if passphrase == "" {
			passphrase = TestnetPassphrase
		}

		signed, err := sign(ctx, prepared.UnsignedXDR, wallet.SignOptions{NetworkPassphrase: passphrase})
		if err != nil {
			return &SignError{Err: err}
		}

		if err := c.post(ctx, "/tx/submit", submitRequest{SignedXDR: signed, NetworkPassphrase: passphrase}, &result); err != nil {
			return err
		}
		if result.TxID == "" {
			return errors.New("vault API returned no transaction id")
		}
		return nil
	}, attrs...)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// guard wraps fn with the circuit breaker, a span and metrics.
func (c *HTTPClient) guard(ctx context.Context, operation string, fn func(context.Context) error, attrs ...tracer.Attribute) (err error) {
	if c.breaker != nil && !c.breaker.Allow() {
		c.metrics.rejected()
		c.logger.WarnContext(ctx, "vault API circuit open", "operation", operation)
		return dErrors.New(dErrors.CodeUnavailable, "Vault service is temporarily unavailable")
	}

	ctx, span := c.tracer.Start(ctx, "acta."+operation, attrs...)
	start := time.Now()
	defer func() {
		span.End(err)
		c.metrics.observe(operation, start, err)
	}()

	err = fn(ctx)

	if c.breaker != nil && !abandoned(err) {
		var change circuit.StateChange
		if countsAsFailure(err) {
			change = c.breaker.RecordFailure()
		} else {
			change = c.breaker.RecordSuccess()
		}
		c.metrics.breakerChanged(change)
		if change.Opened {
			c.logger.WarnContext(ctx, "vault API circuit opened", "operation", operation, "error", err)
		}
		if change.Closed {
			c.logger.InfoContext(ctx, "vault API circuit closed", "operation", operation)
		}
	}
	return err
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}

func (c *HTTPClient) withContract(body map[string]any) map[string]any {
	if c.contractID != "" {
		body["contractId"] = c.contractID
	}
	return body
}

func refBody(ref VCRef) map[string]any {
	return map[string]any{"owner": ref.Owner, "vcId": ref.VCID}
}

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

var _ Client = (*HTTPClient)(nil)
