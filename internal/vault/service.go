// Package vault creates the owner's credential vault, authorizes issuers and
// reads credentials back out of it.
package vault

import (
	"context"
	"log/slog"
	"strings"

	"actavc/internal/acta"
	"actavc/internal/identity"
	"actavc/internal/platform/metrics"
	"actavc/internal/vault/record"
	"actavc/internal/wallet"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/audit"
)

const (
	MsgConnectWallet     = "Connect your wallet first"
	MsgSignerUnavailable = "Signer unavailable"
)

// IdentityReconciler makes the persisted owner DID match the connected wallet.
type IdentityReconciler interface {
	Reconcile(ctx context.Context, connectedAddress string) (identity.DID, bool)
}

// SignerSource yields the transaction signer for a connected wallet address.
type SignerSource interface {
	Signer(address string) wallet.Signer
}

// TxResult is returned by the transaction operations.
type TxResult struct {
	TxID        string `json:"tx_id"`
	ExplorerURL string `json:"explorer_url"`
	OwnerDID    string `json:"owner_did,omitempty"`
}

// Record is a fetched credential with its rendered summary.
type Record struct {
	Record  record.VaultRecord `json:"record"`
	Summary record.Summary     `json:"summary"`
}

type Service struct {
	client   acta.Client
	identity IdentityReconciler
	signers  SignerSource
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditor  *audit.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditLogger(l *audit.Logger) Option {
	return func(s *Service) {
		s.auditor = l
	}
}

func NewService(client acta.Client, reconciler IdentityReconciler, signers SignerSource, opts ...Option) *Service {
	s := &Service{
		client:   client,
		identity: reconciler,
		signers:  signers,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateVault creates the vault of the connected wallet. The owner DID is
// saved first when none is persisted yet.
func (s *Service) CreateVault(ctx context.Context, walletAddress string) (*TxResult, error) {
	const op = "create_vault"
	owner := strings.TrimSpace(walletAddress)
	if owner == "" {
		return nil, s.precondition(op, MsgConnectWallet)
	}
	did, ok := s.identity.Reconcile(ctx, owner)
	if !ok {
		return nil, s.precondition(op, MsgSignerUnavailable)
	}
	signer := s.signers.Signer(owner)
	if signer == nil {
		return nil, s.precondition(op, MsgSignerUnavailable)
	}

	res, err := s.client.CreateVault(ctx, acta.CreateVaultRequest{
		Owner:    owner,
		OwnerDID: did.String(),
		Sign:     signer,
	})
	if err != nil {
		return nil, s.external(ctx, op, err)
	}

	s.count(op, metrics.OutcomeSuccess)
	s.auditor.Log(ctx, audit.EventVaultCreated, "wallet", owner, "subject", did.String(), "tx_id", res.TxID)
	return &TxResult{TxID: res.TxID, ExplorerURL: acta.ExplorerURL(res.TxID), OwnerDID: did.String()}, nil
}

// AuthorizeIssuer authorizes the connected wallet to issue into its own vault.
func (s *Service) AuthorizeIssuer(ctx context.Context, walletAddress string) (*TxResult, error) {
	const op = "authorize_issuer"
	owner := strings.TrimSpace(walletAddress)
	var signer wallet.Signer
	if owner != "" {
		signer = s.signers.Signer(owner)
	}
	if signer == nil {
		return nil, s.precondition(op, MsgConnectWallet)
	}

	res, err := s.client.AuthorizeIssuer(ctx, acta.AuthorizeIssuerRequest{
		Owner:  owner,
		Issuer: owner,
		Sign:   signer,
	})
	if err != nil {
		return nil, s.external(ctx, op, err)
	}

	s.count(op, metrics.OutcomeSuccess)
	s.auditor.Log(ctx, audit.EventIssuerAuthorized, "wallet", owner, "subject", owner, "tx_id", res.TxID)
	return &TxResult{TxID: res.TxID, ExplorerURL: acta.ExplorerURL(res.TxID)}, nil
}

// ListIDs returns the credential ids in the connected wallet's vault. The
// result is never nil.
func (s *Service) ListIDs(ctx context.Context, walletAddress string) ([]string, error) {
	const op = "list"
	owner := strings.TrimSpace(walletAddress)
	if owner == "" {
		return []string{}, nil
	}
	ids, err := s.client.ListVCIDs(ctx, owner)
	if err != nil {
		return nil, s.external(ctx, op, err)
	}
	s.count(op, metrics.OutcomeSuccess)
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Get fetches one credential and renders its summary.
func (s *Service) Get(ctx context.Context, walletAddress, vcID string) (*Record, error) {
	const op = "get"
	owner, vcID, err := s.ref(op, walletAddress, vcID)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GetVC(ctx, acta.VCRef{Owner: owner, VCID: vcID})
	if err != nil {
		return nil, s.external(ctx, op, err)
	}
	rec, ok := record.Decode(raw)
	if !ok {
		s.count(op, metrics.OutcomeFailure)
		return nil, dErrors.New(dErrors.CodeNotFound, "credential not found")
	}

	s.count(op, metrics.OutcomeSuccess)
	return &Record{Record: rec, Summary: record.ParseSummary(rec)}, nil
}

// Verify asks the vault to verify a credential and returns its verdict as-is.
func (s *Service) Verify(ctx context.Context, walletAddress, vcID string) (map[string]any, error) {
	const op = "verify"
	owner, vcID, err := s.ref(op, walletAddress, vcID)
	if err != nil {
		return nil, err
	}

	res, err := s.client.VerifyVC(ctx, acta.VCRef{Owner: owner, VCID: vcID})
	if err != nil {
		return nil, s.external(ctx, op, err)
	}
	s.count(op, metrics.OutcomeSuccess)
	s.auditor.Log(ctx, audit.EventVCVerified, "wallet", owner, "subject", vcID)
	return res, nil
}

func (s *Service) ref(op, walletAddress, vcID string) (string, string, error) {
	owner := strings.TrimSpace(walletAddress)
	if owner == "" {
		return "", "", s.precondition(op, MsgConnectWallet)
	}
	vcID = strings.TrimSpace(vcID)
	if vcID == "" {
		return "", "", dErrors.New(dErrors.CodeValidation, "vc_id is required")
	}
	return owner, vcID, nil
}

func (s *Service) precondition(op, msg string) error {
	s.count(op, metrics.OutcomePrecondition)
	return dErrors.New(dErrors.CodePrecondition, msg)
}

func (s *Service) external(ctx context.Context, op string, err error) error {
	s.count(op, metrics.OutcomeFailure)
	s.logger.WarnContext(ctx, "vault operation failed", "operation", op, "error", err)
	return acta.DomainError(err)
}

func (s *Service) count(op, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementVaultOperation(op, outcome)
	}
}
