package identity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"actavc/internal/identity"
	"actavc/internal/identity/mocks"
	"actavc/internal/localstate"
	"actavc/internal/platform/metrics"
	"actavc/pkg/platform/audit"
	"actavc/pkg/platform/audit/publisher"
	"actavc/pkg/platform/audit/store/memory"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

const (
	addrA = "GAGPI5M5M4CZHQPZSTXOWX4J6UQMUJWFKACPXDRQMZTK43GPOSPW6NVU"
	addrB = "GAAQEAYEAUDAOCAJBIFQYDIOB4IBCEQTCQKRMFYYDENBWHA5DYPSABOV"
)

type DeriverSuite struct {
	suite.Suite
	ctx     context.Context
	state   *localstate.InMemoryStore
	events  *memory.InMemoryStore
	metrics *metrics.Metrics
	deriver *identity.Deriver
}

func TestDeriverSuite(t *testing.T) {
	suite.Run(t, new(DeriverSuite))
}

func (s *DeriverSuite) SetupTest() {
	s.ctx = context.Background()
	s.state = localstate.NewInMemoryStore()
	s.events = memory.NewInMemoryStore()
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.deriver = identity.NewDeriver(identity.NewStateStore(s.state),
		identity.WithLogger(logger),
		identity.WithMetrics(s.metrics),
		identity.WithAuditLogger(audit.NewLogger(logger, publisher.NewPublisher(s.events))),
	)
}

func (s *DeriverSuite) persisted() string {
	v, err := s.state.Get(s.ctx, identity.StorageKey)
	if err != nil {
		return ""
	}
	return v
}

func (s *DeriverSuite) TestSaveComputedDID() {
	s.Run("persists under the well-known key", func() {
		did, ok := s.deriver.SaveComputedDID(s.ctx, addrA)
		s.Require().True(ok)
		s.Equal("did:pkh:stellar:testnet:"+addrA, did.String())
		s.Equal(did.String(), s.persisted())
	})

	s.Run("overwrites the previous identity", func() {
		did, ok := s.deriver.SaveComputedDID(s.ctx, addrB)
		s.Require().True(ok)
		s.Equal(did.String(), s.persisted())
	})

	s.Run("empty address changes nothing", func() {
		before := s.persisted()
		did, ok := s.deriver.SaveComputedDID(s.ctx, "")
		s.False(ok)
		s.Empty(did)
		s.Equal(before, s.persisted())
	})

	s.InDelta(2, testutil.ToFloat64(s.metrics.DIDOperations.WithLabelValues("save")), 0)
	events, _ := s.events.ListAll(s.ctx)
	s.Len(events, 2)
}

func (s *DeriverSuite) TestCurrentDID() {
	s.Run("none without stored identity or wallet", func() {
		did, ok := s.deriver.CurrentDID(s.ctx, "")
		s.False(ok)
		s.Empty(did)
	})

	s.Run("derives from the connected wallet without persisting", func() {
		did, ok := s.deriver.CurrentDID(s.ctx, addrA)
		s.Require().True(ok)
		s.Equal("did:pkh:stellar:testnet:"+addrA, did.String())
		s.Empty(s.persisted())
	})

	s.Run("persisted identity wins over the connected wallet", func() {
		saved, _ := s.deriver.SaveComputedDID(s.ctx, addrA)
		did, ok := s.deriver.CurrentDID(s.ctx, addrB)
		s.Require().True(ok)
		s.Equal(saved, did)
	})
}

func (s *DeriverSuite) TestSavedIdentitySurvivesReload() {
	saved, ok := s.deriver.SaveComputedDID(s.ctx, addrA)
	s.Require().True(ok)

	reloaded := identity.NewDeriver(identity.NewStateStore(s.state),
		identity.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	did, ok := reloaded.CurrentDID(s.ctx, "")
	s.Require().True(ok)
	s.Equal(saved, did)
	s.Equal("did:pkh:stellar:testnet:"+addrA, did.String())
}

func (s *DeriverSuite) TestReconcile() {
	s.Run("saves when nothing is stored", func() {
		did, ok := s.deriver.Reconcile(s.ctx, addrA)
		s.Require().True(ok)
		s.Equal(did.String(), s.persisted())
	})

	s.Run("keeps a matching identity", func() {
		did, ok := s.deriver.Reconcile(s.ctx, addrA)
		s.Require().True(ok)
		s.True(did.Encodes(addrA))
	})

	s.Run("replaces an identity from another wallet", func() {
		did, ok := s.deriver.Reconcile(s.ctx, addrB)
		s.Require().True(ok)
		s.True(did.Encodes(addrB))
		s.Equal(did.String(), s.persisted())
		s.InDelta(1, testutil.ToFloat64(s.metrics.DIDOperations.WithLabelValues("reconcile")), 0)
	})

	s.Run("without a wallet returns the stored identity", func() {
		did, ok := s.deriver.Reconcile(s.ctx, "")
		s.Require().True(ok)
		s.True(did.Encodes(addrB))
	})
}

func (s *DeriverSuite) TestClear() {
	s.deriver.SaveComputedDID(s.ctx, addrA)
	s.Require().NoError(s.deriver.Clear(s.ctx))
	s.Empty(s.persisted())

	did, ok := s.deriver.CurrentDID(s.ctx, "")
	s.False(ok)
	s.Empty(did)
}

func TestDeriverStorageFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	boom := errors.New("storage unavailable")

	t.Run("save failure still returns the computed DID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().Set(gomock.Any(), identity.DID("did:pkh:stellar:testnet:"+addrA)).Return(boom)

		did, ok := identity.NewDeriver(store, identity.WithLogger(logger)).SaveComputedDID(context.Background(), addrA)
		if !ok || did != identity.DID("did:pkh:stellar:testnet:"+addrA) {
			t.Fatalf("got %q, %v", did, ok)
		}
	})

	t.Run("read failure falls back to the connected wallet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().Get(gomock.Any()).Return(identity.DID(""), boom)

		did, ok := identity.NewDeriver(store, identity.WithLogger(logger)).CurrentDID(context.Background(), addrB)
		if !ok || !did.Encodes(addrB) {
			t.Fatalf("got %q, %v", did, ok)
		}
	})

	t.Run("clear failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().Clear(gomock.Any()).Return(boom)

		err := identity.NewDeriver(store, identity.WithLogger(logger)).Clear(context.Background())
		if !errors.Is(err, boom) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})
}
