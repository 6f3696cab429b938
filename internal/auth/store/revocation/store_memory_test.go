package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"soulbound/pkg/platform/sentinel"
)

type InMemoryTRLSuite struct {
	suite.Suite
	trl *InMemoryTRL
	now time.Time
}

func TestInMemoryTRLSuite(t *testing.T) {
	suite.Run(t, new(InMemoryTRLSuite))
}

func (s *InMemoryTRLSuite) SetupTest() {
	s.now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.trl = NewInMemoryTRL()
	s.trl.now = func() time.Time { return s.now }
}

func (s *InMemoryTRLSuite) TestRevokeToken() {
	ctx := context.Background()

	s.Run("unknown token is not revoked", func() {
		revoked, err := s.trl.IsTokenRevoked(ctx, "jti-1")
		s.Require().NoError(err)
		s.False(revoked)
	})

	s.Run("revoked token is reported until its ttl passes", func() {
		s.Require().NoError(s.trl.RevokeToken(ctx, "jti-1", time.Minute))

		revoked, err := s.trl.IsTokenRevoked(ctx, "jti-1")
		s.Require().NoError(err)
		s.True(revoked)

		s.now = s.now.Add(time.Minute)
		revoked, err = s.trl.IsTokenRevoked(ctx, "jti-1")
		s.Require().NoError(err)
		s.False(revoked)
	})

	s.Run("empty jti is ignored", func() {
		s.NoError(s.trl.RevokeToken(ctx, "", time.Minute))
	})

	s.Run("non-positive ttl is rejected", func() {
		err := s.trl.RevokeToken(ctx, "jti-2", 0)
		s.ErrorIs(err, sentinel.ErrInvalidState)
	})
}
