package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	audit "soulbound/pkg/platform/audit"
	"soulbound/pkg/platform/audit/store/memory"
	"soulbound/pkg/platform/circuit"
)

type stubRelay struct {
	n   int
	err error
}

func (s *stubRelay) Flush(context.Context) (int, error) { return s.n, s.err }

type AdminHandlerSuite struct {
	suite.Suite
	recent   *memory.InMemoryStore
	fallback *memory.InMemoryStore
	relay    *stubRelay
	breaker  *circuit.Breaker
	router   http.Handler
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerSuite))
}

func (s *AdminHandlerSuite) SetupTest() {
	s.recent = memory.NewInMemoryStore()
	s.fallback = memory.NewInMemoryStore()
	s.relay = &stubRelay{n: 3}
	s.breaker = circuit.New("audit")

	ctx := context.Background()
	alice := common.HexToAddress("0x00000000000000000000000000000000000000d1").Hex()
	for i := range 5 {
		s.Require().NoError(s.recent.Append(ctx, audit.Event{Seq: uint64(i + 1), Action: "badge_minted", Subject: alice}))
	}
	s.Require().NoError(s.recent.Append(ctx, audit.Event{Seq: 6, Action: "paused"}))
	s.Require().NoError(s.fallback.Append(ctx, audit.Event{Seq: 4, Action: "badge_minted"}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(s.recent, s.fallback, logger, WithRelay(s.relay), WithBreaker(s.breaker)).Register(r)
	s.router = r
}

func (s *AdminHandlerSuite) serve(method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func (s *AdminHandlerSuite) TestRecent() {
	rec := s.serve(http.MethodGet, "/audit/recent?limit=2")
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp AuditEventsResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Require().Len(resp.Events, 2)
	s.Equal(uint64(5), resp.Events[0].Seq)
	s.Equal(6, resp.Total)

	s.Equal(http.StatusBadRequest, s.serve(http.MethodGet, "/audit/recent?limit=0").Code)
}

func (s *AdminHandlerSuite) TestFallback() {
	var resp AuditEventsResponse
	rec := s.serve(http.MethodGet, "/audit/fallback")
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Len(resp.Events, 1)
}

func (s *AdminHandlerSuite) TestBySubject() {
	var resp AuditEventsResponse
	rec := s.serve(http.MethodGet, "/audit/subjects/0x00000000000000000000000000000000000000d1")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Len(resp.Events, 5)

	s.Equal(http.StatusBadRequest, s.serve(http.MethodGet, "/audit/subjects/nope").Code)
}

func (s *AdminHandlerSuite) TestBreaker() {
	var resp BreakerResponse
	rec := s.serve(http.MethodGet, "/audit/breaker")
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("audit", resp.Name)
	s.Equal(circuit.StateClosed.String(), resp.State)
}

func (s *AdminHandlerSuite) TestRelay() {
	s.Run("reports published rows", func() {
		rec := s.serve(http.MethodPost, "/audit/relay")
		s.Require().Equal(http.StatusOK, rec.Code)
		var resp RelayResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal(3, resp.Published)
	})

	s.Run("relay failure is 500", func() {
		s.relay.err = errors.New("broker down")
		s.Equal(http.StatusInternalServerError, s.serve(http.MethodPost, "/audit/relay").Code)
	})

	s.Run("unconfigured relay is 409", func() {
		r := chi.NewRouter()
		New(s.recent, s.fallback, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/audit/relay", nil))
		s.Equal(http.StatusConflict, rec.Code)
	})
}
