package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"soulbound/internal/auth/store/revocation"
	jwttoken "soulbound/internal/jwt_token"
	authmw "soulbound/pkg/platform/middleware/auth"
	"soulbound/pkg/requestcontext"
)

type AuthHandlerSuite struct {
	suite.Suite
	jwt    *jwttoken.JWTService
	trl    *revocation.InMemoryTRL
	router http.Handler
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.jwt = jwttoken.NewJWTService("test-key", "test-issuer", "test-audience")
	s.trl = revocation.NewInMemoryTRL()
	requireAuth := authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(s.jwt), s.trl, logger)

	h := New(s.jwt, s.trl, time.Hour, logger)
	r := chi.NewRouter()
	h.Register(r, requireAuth)
	r.Route("/ops", h.RegisterOps)
	r.With(requireAuth).Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.Caller(r.Context()).Hex()))
	})
	s.router = r
}

func (s *AuthHandlerSuite) post(path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthHandlerSuite) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthHandlerSuite) TestIssueThenLogout() {
	addr := common.HexToAddress("0x00000000000000000000000000000000000000a1")

	rec := s.post("/ops/tokens", "", IssueTokenRequest{Address: addr.Hex()})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var resp TokenResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("Bearer", resp.TokenType)
	s.WithinDuration(time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	who := s.get("/whoami", resp.AccessToken)
	s.Require().Equal(http.StatusOK, who.Code)
	s.Equal(addr.Hex(), who.Body.String())

	s.Equal(http.StatusNoContent, s.post("/auth/logout", resp.AccessToken, nil).Code)
	s.Equal(http.StatusUnauthorized, s.get("/whoami", resp.AccessToken).Code)
	s.Equal(http.StatusUnauthorized, s.post("/auth/logout", resp.AccessToken, nil).Code)
}

func (s *AuthHandlerSuite) TestIssueTokenValidation() {
	tests := []struct {
		name string
		body any
	}{
		{"bad address", IssueTokenRequest{Address: "0xabc"}},
		{"negative ttl", IssueTokenRequest{Address: "0x00000000000000000000000000000000000000a1", TTLSeconds: -1}},
		{"ttl above a day", IssueTokenRequest{Address: "0x00000000000000000000000000000000000000a1", TTLSeconds: 90000}},
		{"unknown field", map[string]string{"addr": "x"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(http.StatusBadRequest, s.post("/ops/tokens", "", tt.body).Code)
		})
	}
}

func (s *AuthHandlerSuite) TestLogoutRequiresToken() {
	s.Equal(http.StatusUnauthorized, s.post("/auth/logout", "", nil).Code)
}
