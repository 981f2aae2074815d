package credential_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"actavc/internal/acta"
	actamocks "actavc/internal/acta/mocks"
	"actavc/internal/credential"
	"actavc/internal/credential/mocks"
	"actavc/internal/identity"
	"actavc/internal/localstate"
	"actavc/internal/platform/metrics"
	"actavc/internal/wallet"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/audit"
	"actavc/pkg/platform/audit/publisher"
	"actavc/pkg/platform/audit/store/memory"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks IdentityResolver,SignerSource
//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks IssuanceStore

const (
	owner    = "GAGPI5M5M4CZHQPZSTXOWX4J6UQMUJWFKACPXDRQMZTK43GPOSPW6NVU"
	ownerDID = identity.DID("did:pkh:stellar:testnet:" + owner)
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	client   *actamocks.MockClient
	resolver *mocks.MockIdentityResolver
	signers  *mocks.MockSignerSource
	store    *credential.InMemoryIssuanceStore
	events   *memory.InMemoryStore
	metrics  *metrics.Metrics
	service  *credential.Service
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.client = actamocks.NewMockClient(ctrl)
	s.resolver = mocks.NewMockIdentityResolver(ctrl)
	s.signers = mocks.NewMockSignerSource(ctrl)
	s.store = credential.NewInMemoryIssuanceStore()
	s.events = memory.NewInMemoryStore()
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = credential.NewService(s.client, s.resolver, s.signers, s.store,
		credential.WithLogger(logger),
		credential.WithMetrics(s.metrics),
		credential.WithAuditLogger(audit.NewLogger(logger, publisher.NewPublisher(s.events))),
		credential.WithClock(func() time.Time { return s.now }),
	)
}

func okSigner() wallet.Signer {
	return func(context.Context, string, wallet.SignOptions) (string, error) { return "signed", nil }
}

func (s *ServiceSuite) auditActions() []string {
	events, err := s.events.ListAll(s.ctx)
	s.Require().NoError(err)
	var out []string
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}

func (s *ServiceSuite) assertPrecondition(err error, msg string) {
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodePrecondition))
	var de *dErrors.Error
	s.Require().ErrorAs(err, &de)
	s.Equal(msg, de.Message)
}

func (s *ServiceSuite) TestIssuePreconditionOrder() {
	s.Run("no wallet beats everything else", func() {
		_, err := s.service.Issue(s.ctx, "", credential.Form{})
		s.assertPrecondition(err, "Connect your wallet first")
	})

	s.Run("no identity is reported as signer unavailable", func() {
		s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(identity.DID(""), false)
		_, err := s.service.Issue(s.ctx, owner, credential.Form{})
		s.assertPrecondition(err, "Signer unavailable")
	})

	s.Run("missing fields are checked before the signer", func() {
		s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(ownerDID, true)
		form := credential.ExampleFields()
		form.DegreeName = ""
		_, err := s.service.Issue(s.ctx, owner, form)
		s.assertPrecondition(err, "Please fill all required fields")
	})

	s.Run("no signer", func() {
		s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(ownerDID, true)
		s.signers.EXPECT().Signer(owner).Return(nil)
		_, err := s.service.Issue(s.ctx, owner, credential.ExampleFields())
		s.assertPrecondition(err, "Signer unavailable")
	})

	s.InDelta(4, testutil.ToFloat64(s.metrics.CredentialsIssued.WithLabelValues(metrics.OutcomePrecondition)), 0)
	list, err := s.store.ListByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ServiceSuite) TestIssueRejectsMalformedValidFrom() {
	s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(ownerDID, true)
	s.signers.EXPECT().Signer(owner).Return(okSigner())
	form := credential.ExampleFields()
	form.ValidFrom = "yesterday"

	_, err := s.service.Issue(s.ctx, owner, form)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestIssueSuccess() {
	s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(ownerDID, true)
	s.signers.EXPECT().Signer(owner).Return(okSigner())
	s.client.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req acta.IssueRequest) (*acta.TxResult, error) {
			s.Equal(owner, req.Owner)
			s.Equal(owner, req.Issuer)
			s.Equal(ownerDID.String(), req.IssuerDID)
			s.NotNil(req.Sign)

			var doc credential.VerifiableCredential
			s.Require().NoError(json.Unmarshal([]byte(req.VCData), &doc))
			s.Equal(req.VCID, doc.ID)
			s.Equal(ownerDID.String(), doc.Issuer.ID)
			s.Equal("Example University", doc.Issuer.Name)
			s.Equal("2010-01-01T19:23:24Z", doc.ValidFrom)
			return &acta.TxResult{TxID: "tx42"}, nil
		})

	res, err := s.service.Issue(s.ctx, owner, credential.ExampleFields())
	s.Require().NoError(err)
	s.Equal("tx42", res.TxID)
	s.Equal("https://stellar.expert/explorer/testnet/tx/tx42", res.ExplorerURL)
	s.True(strings.HasPrefix(res.VCID, "cred_"))

	log, err := s.service.ListIssuances(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Len(log, 1)
	s.Equal(res.VCID, log[0].VCID)
	s.Equal("tx42", log[0].TxID)
	s.Equal(s.now, log[0].CreatedAt)

	s.Equal([]string{string(audit.EventVCIssued)}, s.auditActions())
	s.InDelta(1, testutil.ToFloat64(s.metrics.CredentialsIssued.WithLabelValues(metrics.OutcomeSuccess)), 0)
}

func (s *ServiceSuite) TestIssueExternalFailure() {
	s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(ownerDID, true)
	s.signers.EXPECT().Signer(owner).Return(okSigner())
	s.client.EXPECT().Issue(gomock.Any(), gomock.Any()).
		Return(nil, &acta.APIError{Status: 400, Message: strings.Repeat("x", 200)})

	_, err := s.service.Issue(s.ctx, owner, credential.ExampleFields())
	s.True(dErrors.HasCode(err, dErrors.CodeExternal))
	var de *dErrors.Error
	s.Require().ErrorAs(err, &de)
	s.Equal(strings.Repeat("x", 157)+"…", de.Message)

	s.Equal([]string{string(audit.EventVCIssueFailed)}, s.auditActions())
	list, _ := s.store.ListByOwner(s.ctx, owner)
	s.Empty(list)
}

func (s *ServiceSuite) TestIssueDeduplicatesConcurrentSubmissions() {
	release := make(chan struct{})
	s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(ownerDID, true).Times(2)
	s.signers.EXPECT().Signer(owner).Return(okSigner()).Times(2)
	s.client.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, acta.IssueRequest) (*acta.TxResult, error) {
			<-release
			return &acta.TxResult{TxID: "tx-once"}, nil
		}).Times(1)

	var wg sync.WaitGroup
	results := make([]*credential.Result, 2)
	started := make(chan struct{}, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			res, err := s.service.Issue(s.ctx, owner, credential.ExampleFields())
			s.NoError(err)
			results[i] = res
		}()
	}
	<-started
	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Require().NotNil(results[0])
	s.Require().NotNil(results[1])
	s.Equal(results[0].VCID, results[1].VCID)
	list, _ := s.store.ListByOwner(s.ctx, owner)
	s.Len(list, 1)
}

func (s *ServiceSuite) TestSubmit() {
	doc := credential.Build(credential.Fields{IssuerDID: ownerDID.String(), IssuerName: "Example University"})

	s.Run("missing signer makes no call", func() {
		_, err := s.service.Submit(s.ctx, doc, owner, owner, ownerDID, nil)
		s.assertPrecondition(err, "Signer unavailable")
	})

	s.Run("missing issuer DID makes no call", func() {
		_, err := s.service.Submit(s.ctx, doc, owner, owner, "", okSigner())
		s.assertPrecondition(err, "Signer unavailable")
	})

	s.Run("empty error message falls back", func() {
		s.client.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, errors.New("   "))
		_, err := s.service.Submit(s.ctx, doc, owner, owner, ownerDID, okSigner())
		var de *dErrors.Error
		s.Require().ErrorAs(err, &de)
		s.Equal("Something went wrong. Please try again.", de.Message)
	})

	s.Run("unavailable passes through", func() {
		s.client.EXPECT().Issue(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "Vault service is temporarily unavailable"))
		_, err := s.service.Submit(s.ctx, doc, owner, owner, ownerDID, okSigner())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *ServiceSuite) TestIssueSurvivesRecordFailure() {
	ctrl := gomock.NewController(s.T())
	failing := mocks.NewMockIssuanceStore(ctrl)
	failing.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	svc := credential.NewService(s.client, s.resolver, s.signers, failing,
		credential.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	s.resolver.EXPECT().Reconcile(gomock.Any(), owner).Return(ownerDID, true)
	s.signers.EXPECT().Signer(owner).Return(okSigner())
	s.client.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(&acta.TxResult{TxID: "tx9"}, nil)

	res, err := svc.Issue(s.ctx, owner, credential.ExampleFields())
	s.Require().NoError(err)
	s.Equal("tx9", res.TxID)
}

func (s *ServiceSuite) TestIssueUsesSessionWalletDIDAfterAnotherWalletConnects() {
	const other = "GAAQEAYEAUDAOCAJBIFQYDIOB4IBCEQTCQKRMFYYDENBWHA5DYPSABOV"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deriver := identity.NewDeriver(identity.NewStateStore(localstate.NewInMemoryStore()), identity.WithLogger(logger))
	svc := credential.NewService(s.client, deriver, s.signers, s.store, credential.WithLogger(logger))

	_, ok := deriver.Reconcile(s.ctx, owner)
	s.Require().True(ok)
	_, ok = deriver.Reconcile(s.ctx, other)
	s.Require().True(ok)

	s.signers.EXPECT().Signer(owner).Return(okSigner())
	s.client.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req acta.IssueRequest) (*acta.TxResult, error) {
			s.Equal(owner, req.Issuer)
			s.Equal(ownerDID.String(), req.IssuerDID)
			return &acta.TxResult{TxID: "tx-a"}, nil
		})

	res, err := svc.Issue(s.ctx, owner, credential.ExampleFields())
	s.Require().NoError(err)
	s.Equal(ownerDID.String(), res.IssuerDID)

	current, ok := deriver.CurrentDID(s.ctx, "")
	s.Require().True(ok)
	s.Equal(ownerDID, current)
}
