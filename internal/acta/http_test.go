package acta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"actavc/internal/wallet"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/circuit"
)

const (
	owner    = "GAGPI5M5M4CZHQPZSTXOWX4J6UQMUJWFKACPXDRQMZTK43GPOSPW6NVU"
	ownerDID = "did:pkh:stellar:testnet:" + owner
)

type HTTPClientSuite struct {
	suite.Suite
	mux     *http.ServeMux
	server  *httptest.Server
	client  *HTTPClient
	metrics *Metrics
	breaker *circuit.Breaker
	now     time.Time
}

func TestHTTPClientSuite(t *testing.T) {
	suite.Run(t, new(HTTPClientSuite))
}

func (s *HTTPClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.breaker = circuit.New("acta",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return s.now }),
	)
	s.metrics = NewMetricsWith(prometheus.NewRegistry())
	s.client = NewHTTPClient(HTTPClientConfig{
		BaseURL:    s.server.URL + "/",
		APIKey:     "test-key",
		ContractID: "CVAULT",
		Breaker:    s.breaker,
		Metrics:    s.metrics,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *HTTPClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *HTTPClientSuite) handleJSON(path string, status int, respond any, capture *map[string]any) {
	s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("test-key", r.Header.Get("X-API-Key"))
		if capture != nil {
			s.Require().NoError(json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(respond)
	})
}

func signerReturning(signed string, seen *string) wallet.Signer {
	return func(_ context.Context, xdr string, opts wallet.SignOptions) (string, error) {
		if seen != nil {
			*seen = xdr + "|" + opts.NetworkPassphrase
		}
		return signed, nil
	}
}

func (s *HTTPClientSuite) TestIssue() {
	s.Run("prepares, signs and submits", func() {
		var prepared, submitted map[string]any
		s.handleJSON("/credentials/issue/prepare", http.StatusOK,
			map[string]string{"unsignedXdr": "AAAA-unsigned", "networkPassphrase": TestnetPassphrase}, &prepared)
		s.handleJSON("/tx/submit", http.StatusOK, map[string]string{"txId": "abc123"}, &submitted)

		var seen string
		res, err := s.client.Issue(context.Background(), IssueRequest{
			Owner:     owner,
			VCID:      "cred_0123",
			VCData:    `{"id":"cred_0123"}`,
			Issuer:    owner,
			IssuerDID: ownerDID,
			Sign:      signerReturning("AAAA-signed", &seen),
		})
		s.Require().NoError(err)
		s.Equal("abc123", res.TxID)

		s.Equal(owner, prepared["owner"])
		s.Equal("cred_0123", prepared["vcId"])
		s.Equal(`{"id":"cred_0123"}`, prepared["vcData"])
		s.Equal(ownerDID, prepared["issuerDid"])
		s.Equal("CVAULT", prepared["contractId"])
		s.Equal("AAAA-unsigned|"+TestnetPassphrase, seen)
		s.Equal("AAAA-signed", submitted["signedXdr"])
		s.InDelta(1, testutil.ToFloat64(s.metrics.RequestsTotal.WithLabelValues("issue", "success")), 0)
	})
}

func (s *HTTPClientSuite) TestTransactionFailures() {
	s.Run("nil signer is a precondition failure without a call", func() {
		var calls atomic.Int32
		s.mux.HandleFunc("/vault/create/prepare", func(http.ResponseWriter, *http.Request) { calls.Add(1) })

		_, err := s.client.CreateVault(context.Background(), CreateVaultRequest{Owner: owner, OwnerDID: ownerDID})
		s.True(dErrors.HasCode(err, dErrors.CodePrecondition))
		s.Zero(calls.Load())
	})

	s.Run("wallet rejection keeps its message and does not trip the breaker", func() {
		s.handleJSON("/vault/authorize-issuer/prepare", http.StatusOK, map[string]string{"unsignedXdr": "AAAA"}, nil)
		declined := func(context.Context, string, wallet.SignOptions) (string, error) {
			return "", errors.New("User declined access")
		}

		for range 3 {
			_, err := s.client.AuthorizeIssuer(context.Background(), AuthorizeIssuerRequest{Owner: owner, Issuer: owner, Sign: declined})
			var signErr *SignError
			s.Require().ErrorAs(err, &signErr)
			s.Equal("User declined access", err.Error())
		}
		s.False(s.breaker.IsOpen())
	})
}

func (s *HTTPClientSuite) TestAPIErrorMessage() {
	s.handleJSON("/vault/create/prepare", http.StatusBadRequest, map[string]string{"message": "Vault already exists"}, nil)

	_, err := s.client.CreateVault(context.Background(), CreateVaultRequest{Owner: owner, OwnerDID: ownerDID, Sign: signerReturning("x", nil)})
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.Status)
	s.Equal("Vault already exists", err.Error())
	s.False(s.breaker.IsOpen())
}

func (s *HTTPClientSuite) TestBreakerOpensOnServerErrors() {
	var calls atomic.Int32
	s.mux.HandleFunc("/vault/list-vc-ids", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for range 2 {
		_, err := s.client.ListVCIDs(context.Background(), owner)
		s.Require().Error(err)
	}
	s.True(s.breaker.IsOpen())
	s.InDelta(1, testutil.ToFloat64(s.metrics.BreakerOpen), 0)

	_, err := s.client.ListVCIDs(context.Background(), owner)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Equal(int32(2), calls.Load())

	s.now = s.now.Add(2 * time.Minute)
	_, err = s.client.ListVCIDs(context.Background(), owner)
	s.Require().Error(err)
	s.Equal(int32(3), calls.Load())
}

func (s *HTTPClientSuite) TestAbandonedCallsDoNotTripBreaker() {
	var calls atomic.Int32
	s.mux.HandleFunc("/vault/list-vc-ids", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for range 3 {
		_, err := s.client.ListVCIDs(ctx, owner)
		s.Require().ErrorIs(err, context.Canceled)
	}
	s.False(s.breaker.IsOpen())

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()
	_, err := s.client.ListVCIDs(expired, owner)
	s.Require().ErrorIs(err, context.DeadlineExceeded)
	s.False(s.breaker.IsOpen())

	// one real failure after the abandoned calls is still below the threshold
	_, err = s.client.ListVCIDs(context.Background(), owner)
	s.Require().Error(err)
	s.False(s.breaker.IsOpen())
	s.Equal(int32(1), calls.Load())
}

func (s *HTTPClientSuite) TestReads() {
	s.Run("list returns an empty slice when the vault is empty", func() {
		s.handleJSON("/vault/list-vc-ids", http.StatusOK, map[string]any{"vcIds": nil}, nil)
		ids, err := s.client.ListVCIDs(context.Background(), owner)
		s.Require().NoError(err)
		s.NotNil(ids)
		s.Empty(ids)
	})

	s.Run("get returns the raw record", func() {
		var body map[string]any
		s.handleJSON("/vault/get-vc", http.StatusOK, map[string]any{"vc": map[string]any{"id": "cred_1", "data": "{}"}}, &body)
		raw, err := s.client.GetVC(context.Background(), VCRef{Owner: owner, VCID: "cred_1"})
		s.Require().NoError(err)
		s.JSONEq(`{"id":"cred_1","data":"{}"}`, string(raw))
		s.Equal("cred_1", body["vcId"])
	})

	s.Run("verify returns the API result", func() {
		s.handleJSON("/vault/verify-vc", http.StatusOK, map[string]any{"status": "valid", "revoked": false}, nil)
		res, err := s.client.VerifyVC(context.Background(), VCRef{Owner: owner, VCID: "cred_1"})
		s.Require().NoError(err)
		s.Equal("valid", res["status"])
	})
}

func (s *HTTPClientSuite) TestGetMissingRecordIsNull() {
	s.handleJSON("/vault/get-vc", http.StatusOK, map[string]any{}, nil)
	raw, err := s.client.GetVC(context.Background(), VCRef{Owner: owner, VCID: "cred_missing"})
	s.Require().NoError(err)
	s.Equal("null", string(raw))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage([]byte(`{"error":"boom"}`)))
	assert.Equal(t, "upstream timeout", errorMessage([]byte("  upstream timeout\n")))
	assert.Equal(t, "vault API returned 503", (&APIError{Status: 503}).Error())
	assert.True(t, (&APIError{Status: http.StatusTooManyRequests}).Retryable())
	assert.False(t, countsAsFailure(&APIError{Status: http.StatusNotFound}))
	assert.False(t, countsAsFailure(fmt.Errorf("call /tx/submit: %w", context.Canceled)))
	assert.True(t, countsAsFailure(errors.New("connection refused")))
}

func TestDomainError(t *testing.T) {
	assert.NoError(t, DomainError(nil))

	unavailable := dErrors.New(dErrors.CodeUnavailable, "down")
	assert.Same(t, unavailable, DomainError(unavailable))

	err := DomainError(&APIError{Status: http.StatusBadRequest, Message: "  Vault not found  "})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeExternal))
	var de *dErrors.Error
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "Vault not found", de.Message)
}
