package credential

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"actavc/internal/sentinel"
	id "actavc/pkg/domain"
	"actavc/pkg/testutil"
)

type InMemoryIssuanceStoreSuite struct {
	suite.Suite
	store *InMemoryIssuanceStore
	ctx   context.Context
}

func TestInMemoryIssuanceStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryIssuanceStoreSuite))
}

func (s *InMemoryIssuanceStoreSuite) SetupTest() {
	s.store = NewInMemoryIssuanceStore()
	s.ctx = context.Background()
}

func issuanceAt(owner, vcID string, at time.Time) Issuance {
	return Issuance{
		ID:        id.NewIssuanceID(),
		VCID:      vcID,
		TxID:      "tx_" + vcID,
		Owner:     owner,
		IssuerDID: testutil.TestnetDID(owner),
		CreatedAt: at,
	}
}

func (s *InMemoryIssuanceStoreSuite) TestListByOwnerNewestFirst() {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Save(s.ctx, issuanceAt(testutil.AddressExample, "cred_a", base)))
	s.Require().NoError(s.store.Save(s.ctx, issuanceAt(testutil.AddressZero, "cred_b", base.Add(time.Hour))))
	s.Require().NoError(s.store.Save(s.ctx, issuanceAt(testutil.AddressExample, "cred_c", base.Add(2*time.Hour))))

	got, err := s.store.ListByOwner(s.ctx, testutil.AddressExample)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("cred_c", got[0].VCID)
	s.Equal("cred_a", got[1].VCID)
}

func (s *InMemoryIssuanceStoreSuite) TestUnknownOwnerIsEmpty() {
	got, err := s.store.ListByOwner(s.ctx, testutil.AddressSeq)
	s.Require().NoError(err)
	s.NotNil(got)
	s.Empty(got)
}

func (s *InMemoryIssuanceStoreSuite) TestDuplicateCredentialID() {
	now := time.Now()
	s.Require().NoError(s.store.Save(s.ctx, issuanceAt(testutil.AddressExample, "cred_dup", now)))
	err := s.store.Save(s.ctx, issuanceAt(testutil.AddressExample, "cred_dup", now))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *InMemoryIssuanceStoreSuite) TestConcurrentSavesOfOneCredential() {
	now := time.Now()
	result := testutil.RunConcurrent(20, func(int) error {
		return s.store.Save(s.ctx, issuanceAt(testutil.AddressExample, "cred_race", now))
	})
	s.Equal(int32(1), result.Successes)
	s.Equal(int32(19), result.Conflicts)
	s.Zero(result.Errors)
	s.Equal(int32(20), result.Total())

	got, err := s.store.ListByOwner(s.ctx, testutil.AddressExample)
	s.Require().NoError(err)
	s.Len(got, 1)
}
