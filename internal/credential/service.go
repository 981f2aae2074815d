package credential

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"actavc/internal/acta"
	"actavc/internal/identity"
	"actavc/internal/platform/metrics"
	"actavc/internal/wallet"
	id "actavc/pkg/domain"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/audit"
	"actavc/pkg/validation"
)

// User-facing precondition messages.
const (
	MsgConnectWallet     = "Connect your wallet first"
	MsgSignerUnavailable = "Signer unavailable"
	MsgMissingFields     = "Please fill all required fields"
)

// IdentityResolver yields the owner DID of the session wallet, bringing the
// persisted copy in step with it. Several wallets may hold sessions at once,
// so the DID is always derived from the caller's own address.
type IdentityResolver interface {
	Reconcile(ctx context.Context, connectedAddress string) (identity.DID, bool)
}

// SignerSource yields the transaction signer for a connected wallet address.
type SignerSource interface {
	Signer(address string) wallet.Signer
}

// Service assembles and submits credentials.
type Service struct {
	client   acta.Client
	identity IdentityResolver
	signers  SignerSource
	store    IssuanceStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditor  *audit.Logger
	now      func() time.Time
	inflight singleflight.Group
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(client acta.Client, resolver IdentityResolver, signers SignerSource, store IssuanceStore, opts ...Option) *Service {
	s := &Service{
		client:   client,
		identity: resolver,
		signers:  signers,
		store:    store,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit serializes doc and registers it in owner's vault. owner, issuerDID
// and signer must be present; when any is missing no call is made.
func (s *Service) Submit(ctx context.Context, doc VerifiableCredential, owner, issuerAddress string, issuerDID identity.DID, signer wallet.Signer) (*Result, error) {
	if signer == nil || strings.TrimSpace(owner) == "" || issuerDID == "" {
		return nil, dErrors.New(dErrors.CodePrecondition, MsgSignerUnavailable)
	}

	vcData, err := Serialize(doc)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to serialize credential")
	}

	res, err := s.client.Issue(ctx, acta.IssueRequest{
		Owner:     owner,
		VCID:      doc.ID,
		VCData:    vcData,
		Issuer:    issuerAddress,
		IssuerDID: issuerDID.String(),
		Sign:      signer,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "credential submission failed", "error", err, "vc_id", doc.ID)
		return nil, acta.DomainError(err)
	}

	return &Result{
		VCID:        doc.ID,
		TxID:        res.TxID,
		IssuerDID:   issuerDID.String(),
		ExplorerURL: ExplorerURL(res.TxID),
	}, nil
}

// Issue runs the full issuance flow for the connected wallet: it checks the
// wallet, the owner identity, the form and the signer, in that order, then
// builds, submits and records the credential. Identical concurrent requests
// share one submission.
func (s *Service) Issue(ctx context.Context, walletAddress string, form Form) (*Result, error) {
	start := s.now()

	owner := strings.TrimSpace(walletAddress)
	if owner == "" {
		return nil, s.precondition(ctx, owner, MsgConnectWallet)
	}
	did, ok := s.identity.Reconcile(ctx, owner)
	if !ok {
		return nil, s.precondition(ctx, owner, MsgSignerUnavailable)
	}
	if missing := validation.MissingFields(form); len(missing) > 0 {
		s.logger.InfoContext(ctx, "issuance form incomplete", "missing", missing)
		return nil, s.precondition(ctx, owner, MsgMissingFields)
	}
	signer := s.signers.Signer(owner)
	if signer == nil {
		return nil, s.precondition(ctx, owner, MsgSignerUnavailable)
	}
	if err := validation.Validate(form); err != nil {
		return nil, err
	}

	v, err, shared := s.inflight.Do(inflightKey(owner, did, form), func() (any, error) {
		doc := build(Fields{
			IssuerDID:  did.String(),
			IssuerName: form.IssuerName,
			SubjectDID: form.SubjectDID,
			DegreeType: form.DegreeType,
			DegreeName: form.DegreeName,
			ValidFrom:  form.ValidFrom,
		}, s.now)
		res, err := s.Submit(ctx, doc, owner, owner, did, signer)
		if err != nil {
			s.countIssued(metrics.OutcomeFailure)
			s.auditor.Log(ctx, audit.EventVCIssueFailed, "wallet", owner, "subject", doc.ID, "reason", dErrors.Friendly(err, dErrors.DefaultFailureMessage))
			return nil, err
		}

		s.record(ctx, owner, res)
		s.countIssued(metrics.OutcomeSuccess)
		if s.metrics != nil {
			s.metrics.ObserveIssueLatency(s.now().Sub(start).Seconds())
		}
		s.auditor.Log(ctx, audit.EventVCIssued, "wallet", owner, "subject", res.VCID, "tx_id", res.TxID)
		return res, nil
	})
	if shared {
		s.logger.DebugContext(ctx, "issuance shared with concurrent request", "wallet", owner)
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// ListIssuances returns the local issuance log for owner, newest first.
func (s *Service) ListIssuances(ctx context.Context, owner string) ([]Issuance, error) {
	out, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list issuances")
	}
	return out, nil
}

// record keeps the transaction id. The transaction is already on chain, so a
// storage failure is logged and does not fail the issuance.
func (s *Service) record(ctx context.Context, owner string, res *Result) {
	err := s.store.Save(ctx, Issuance{
		ID:        id.NewIssuanceID(),
		VCID:      res.VCID,
		TxID:      res.TxID,
		Owner:     owner,
		IssuerDID: res.IssuerDID,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to record issuance", "error", err, "vc_id", res.VCID, "tx_id", res.TxID)
	}
}

func (s *Service) precondition(ctx context.Context, owner, msg string) error {
	s.countIssued(metrics.OutcomePrecondition)
	s.logger.InfoContext(ctx, "issuance precondition failed", "reason", msg, "wallet", owner)
	return dErrors.New(dErrors.CodePrecondition, msg)
}

func (s *Service) countIssued(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementCredentialsIssued(outcome)
	}
}

func inflightKey(owner string, did identity.DID, form Form) string {
	return strings.Join([]string{
		owner, did.String(), form.IssuerName, form.SubjectDID, form.DegreeType, form.DegreeName, form.ValidFrom,
	}, "\x1f")
}
