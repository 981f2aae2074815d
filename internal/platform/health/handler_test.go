package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
)

type HealthHandlerSuite struct {
	suite.Suite
	handler *Handler
	router  chi.Router
}

func TestHealthHandlerSuite(t *testing.T) {
	suite.Run(t, new(HealthHandlerSuite))
}

func (s *HealthHandlerSuite) SetupTest() {
	s.handler = New("test")
	s.router = chi.NewRouter()
	s.handler.Register(s.router)
}

func (s *HealthHandlerSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *HealthHandlerSuite) TestLiveness() {
	rec := s.get("/health/live")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"alive"}`, rec.Body.String())
}

func (s *HealthHandlerSuite) TestReadiness() {
	s.Run("ready with no checks", func() {
		s.Equal(http.StatusOK, s.get("/health/ready").Code)
	})

	s.Run("reports each check", func() {
		s.handler.RegisterCheck("postgres", func(context.Context) error { return nil })
		s.handler.RegisterCheck("vault", func(context.Context) error { return errors.New("breaker open") })

		rec := s.get("/health/ready")
		s.Equal(http.StatusServiceUnavailable, rec.Code)

		var body ReadinessResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("not_ready", body.Status)
		s.Equal("up", body.Checks["postgres"])
		s.Equal("down: breaker open", body.Checks["vault"])
	})
}

func (s *HealthHandlerSuite) TestStatus() {
	rec := s.get("/health")
	s.Equal(http.StatusOK, rec.Code)

	var body StatusResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("healthy", body.Status)
	s.Equal("test", body.Environment)
}
