package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	id "soulbound/pkg/domain"
	"soulbound/pkg/requestcontext"
)

type stubValidator struct {
	claims map[string]*JWTClaims
}

func (v stubValidator) ValidateToken(token string) (*JWTClaims, error) {
	if c, ok := v.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

type RequireAuthSuite struct {
	suite.Suite
	validator stubValidator
	logger    *slog.Logger
	caller    id.Address
	seen      id.Address
	seenJTI   string
	next      http.Handler
}

func TestRequireAuthSuite(t *testing.T) {
	suite.Run(t, new(RequireAuthSuite))
}

func (s *RequireAuthSuite) SetupTest() {
	s.caller = common.HexToAddress("0xa1")
	s.validator = stubValidator{claims: map[string]*JWTClaims{
		"good":    {Address: s.caller, JTI: "jti-1"},
		"revoked": {Address: s.caller, JTI: "jti-2"},
		"no-jti":  {Address: s.caller},
		"no-addr": {JTI: "jti-3"},
	}}
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.seen = id.ZeroAddress
	s.next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.seen = requestcontext.Caller(r.Context())
		s.seenJTI = requestcontext.AccessTokenID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *RequireAuthSuite) serve(checker TokenRevocationChecker, header string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/events", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	RequireAuth(s.validator, checker, s.logger)(s.next).ServeHTTP(w, r)
	return w
}

func (s *RequireAuthSuite) TestWithoutRevocation() {
	s.Run("valid token sets caller", func() {
		w := s.serve(nil, "Bearer good")
		s.Equal(http.StatusNoContent, w.Code)
		s.Equal(s.caller, s.seen)
		s.Equal("jti-1", s.seenJTI)
	})

	s.Run("missing header", func() {
		w := s.serve(nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Contains(w.Body.String(), "Missing or invalid Authorization header")
	})

	s.Run("wrong scheme", func() {
		s.Equal(http.StatusUnauthorized, s.serve(nil, "Basic good").Code)
	})

	s.Run("invalid token", func() {
		s.Equal(http.StatusUnauthorized, s.serve(nil, "Bearer bogus").Code)
	})

	s.Run("token without address", func() {
		s.Equal(http.StatusUnauthorized, s.serve(nil, "Bearer no-addr").Code)
	})
}

func (s *RequireAuthSuite) TestWithRevocation() {
	checker := stubRevocations{revoked: map[string]bool{"jti-2": true}}

	s.Run("live token passes", func() {
		s.Equal(http.StatusNoContent, s.serve(checker, "Bearer good").Code)
	})

	s.Run("revoked token rejected", func() {
		w := s.serve(checker, "Bearer revoked")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Contains(w.Body.String(), "Token has been revoked")
	})

	s.Run("token without jti rejected", func() {
		s.Equal(http.StatusUnauthorized, s.serve(checker, "Bearer no-jti").Code)
	})

	s.Run("checker failure is internal", func() {
		w := s.serve(stubRevocations{err: errors.New("redis down")}, "Bearer good")
		s.Equal(http.StatusInternalServerError, w.Code)
	})
}
