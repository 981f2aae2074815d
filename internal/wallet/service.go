package wallet

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"actavc/internal/identity"
	jwttoken "actavc/internal/jwt_token"
	"actavc/internal/platform/metrics"
	id "actavc/pkg/domain"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/audit"
)

// IdentityReconciler keeps the owner DID in step with the connected wallet.
type IdentityReconciler interface {
	Reconcile(ctx context.Context, connectedAddress string) (identity.DID, bool)
}

// TokenIssuer mints wallet session tokens.
type TokenIssuer interface {
	GenerateSessionToken(ctx context.Context, in jwttoken.SessionInput) (string, time.Time, error)
}

// Sessions persists the restorable wallet session.
type Sessions interface {
	Load(ctx context.Context) (Session, bool, error)
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}

// ConnectRequest selects the wallet to connect. ModuleID wins over Name.
type ConnectRequest struct {
	ModuleID  string
	Name      string
	UserAgent string
}

// ConnectResult is returned by Connect.
type ConnectResult struct {
	Session   Session
	DID       identity.DID
	Token     string
	ExpiresAt time.Time
}

// Service connects, restores and disconnects the wallet session.
type Service struct {
	connector Connector
	sessions  Sessions
	identity  IdentityReconciler
	tokens    TokenIssuer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditor   *audit.Logger
}

// Option configures a Service.
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

func NewService(connector Connector, sessions Sessions, reconciler IdentityReconciler, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		connector: connector,
		sessions:  sessions,
		identity:  reconciler,
		tokens:    tokens,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect asks the selected wallet for its address, persists the session,
// reconciles the owner DID and mints a session token.
func (s *Service) Connect(ctx context.Context, req ConnectRequest) (*ConnectResult, error) {
	moduleID := strings.ToLower(strings.TrimSpace(req.ModuleID))
	if moduleID == "" {
		moduleID = ModuleIDForName(req.Name)
	}
	if moduleID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Unsupported wallet")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = moduleID
	}

	raw, err := s.connector.Address(ctx, moduleID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to retrieve wallet address", "error", err, "module", moduleID)
		return nil, dErrors.External(err)
	}
	address, err := id.ParseStellarAddress(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "wallet returned an invalid address", "error", err, "module", moduleID)
		return nil, dErrors.New(dErrors.CodeExternal, "Wallet returned an invalid address")
	}

	session := Session{
		Address:  address.String(),
		Name:     name,
		ModuleID: moduleID,
		Device:   DeviceLabel(req.UserAgent),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.WarnContext(ctx, "failed to persist wallet session", "error", err)
	}

	did, _ := s.identity.Reconcile(ctx, session.Address)

	token, expiresAt, err := s.tokens.GenerateSessionToken(ctx, jwttoken.SessionInput{
		Address:    session.Address,
		WalletName: session.Name,
		WalletID:   session.ModuleID,
		Device:     session.Device,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create wallet session")
	}

	if s.metrics != nil {
		s.metrics.IncrementWalletConnections(moduleID)
	}
	s.auditor.Log(ctx, audit.EventWalletConnected, "wallet", session.Address, "subject", moduleID)

	return &ConnectResult{Session: session, DID: did, Token: token, ExpiresAt: expiresAt}, nil
}

// Restore returns the persisted session, filling a missing module id from the wallet name.
func (s *Service) Restore(ctx context.Context) (Session, bool) {
	session, ok, err := s.sessions.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load wallet session", "error", err)
		return Session{}, false
	}
	if !ok {
		return Session{}, false
	}
	if session.ModuleID == "" {
		session.ModuleID = ModuleIDForName(session.Name)
	}
	return session, true
}

// Disconnect tells the wallet to forget the connection and clears the
// persisted session. The owner DID is kept.
func (s *Service) Disconnect(ctx context.Context) error {
	session, ok := s.Restore(ctx)
	if ok && s.connector != nil {
		if err := s.connector.Disconnect(ctx, session.Address); err != nil {
			s.logger.WarnContext(ctx, "wallet disconnect failed", "error", err)
		}
	}
	if err := s.sessions.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear wallet session")
	}
	if s.metrics != nil {
		s.metrics.IncrementWalletDisconnections()
	}
	s.auditor.Log(ctx, audit.EventWalletDisconnected, "wallet", session.Address)
	return nil
}

// Signer returns the signer for address, or nil when no wallet is connected.
func (s *Service) Signer(address string) Signer {
	return SignerFor(s.connector, address)
}
