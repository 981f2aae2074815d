package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"actavc/internal/identity"
	"actavc/internal/identity/handler/mocks"
	"actavc/pkg/requestcontext"
	"actavc/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type IdentityHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestIdentityHandlerSuite(t *testing.T) {
	suite.Run(t, new(IdentityHandlerSuite))
}

func (s *IdentityHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterProtected(s.router)
}

func (s *IdentityHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *IdentityHandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *IdentityHandlerSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *IdentityHandlerSuite) TestGetDID() {
	s.Run("returns the current identity", func() {
		did := identity.DID(testutil.TestnetDID(testutil.AddressExample))
		s.service.EXPECT().CurrentDID(gomock.Any(), testutil.AddressExample).Return(did, true)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/identity/did?address="+testutil.AddressExample, nil))
		s.Equal(http.StatusOK, rec.Code)
		body := s.decode(rec)
		s.Equal(did.String(), body["did"])
		s.Equal(testutil.AddressExample, body["address"])
		s.Equal("testnet", body["network"])
	})

	s.Run("404 when no identity is available", func() {
		s.service.EXPECT().CurrentDID(gomock.Any(), "").Return(identity.DID(""), false)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/identity/did", nil))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("not_found", s.decode(rec)["error"])
	})
}

func (s *IdentityHandlerSuite) TestSaveDID() {
	s.Run("saves the session wallet identity", func() {
		addr := testutil.MustAddress(s.T(), testutil.AddressSeq)
		did := identity.DID(testutil.TestnetDID(testutil.AddressSeq))
		s.service.EXPECT().SaveComputedDID(gomock.Any(), testutil.AddressSeq).Return(did, true)

		req := httptest.NewRequest(http.MethodPost, "/identity/did", nil)
		req = req.WithContext(requestcontext.WithWallet(req.Context(), requestcontext.Wallet{Address: addr}))

		rec := s.do(req)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal(did.String(), s.decode(rec)["did"])
	})

	s.Run("500 when the session middleware did not run", func() {
		rec := s.do(httptest.NewRequest(http.MethodPost, "/identity/did", nil))
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.Equal("internal_error", s.decode(rec)["error"])
	})
}

func (s *IdentityHandlerSuite) sessionRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	addr := testutil.MustAddress(s.T(), testutil.AddressExample)
	return req.WithContext(requestcontext.WithWallet(req.Context(), requestcontext.Wallet{Address: addr}))
}

func (s *IdentityHandlerSuite) TestClearDID() {
	s.Run("204 on success", func() {
		s.service.EXPECT().Clear(gomock.Any()).Return(nil)
		rec := s.do(s.sessionRequest(http.MethodDelete, "/identity/did"))
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("500 on storage failure", func() {
		s.service.EXPECT().Clear(gomock.Any()).Return(errors.New("redis down"))
		rec := s.do(s.sessionRequest(http.MethodDelete, "/identity/did"))
		s.Equal(http.StatusInternalServerError, rec.Code)
	})

	s.Run("refused without a wallet session", func() {
		rec := s.do(httptest.NewRequest(http.MethodDelete, "/identity/did", nil))
		s.Equal(http.StatusInternalServerError, rec.Code)
	})

	s.Run("not mounted on the public routes", func() {
		public := chi.NewRouter()
		New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(public)
		rec := httptest.NewRecorder()
		public.ServeHTTP(rec, s.sessionRequest(http.MethodDelete, "/identity/did"))
		s.Equal(http.StatusMethodNotAllowed, rec.Code)
	})
}
