package enumeration

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	id "soulbound/pkg/domain"
)

type IndexSuite struct {
	suite.Suite
	index *Index
	alice id.Address
	bob   id.Address
}

func TestIndexSuite(t *testing.T) {
	suite.Run(t, new(IndexSuite))
}

func (s *IndexSuite) SetupTest() {
	s.index = New()
	s.alice = common.HexToAddress("0xa1")
	s.bob = common.HexToAddress("0xb0")
}

// ownerTokens walks tokenOfOwnerByIndex over the whole range.
func (s *IndexSuite) ownerTokens(owner id.Address) []id.TokenID {
	var out []id.TokenID
	for i := uint64(0); i < s.index.OwnerCount(owner); i++ {
		t, err := s.index.TokenOfOwnerByIndex(owner, i)
		s.Require().NoError(err)
		out = append(out, t)
	}
	return out
}

func (s *IndexSuite) TestAppend() {
	s.Run("keeps issuance order in both views", func() {
		s.index.Append(s.alice, 1)
		s.index.Append(s.bob, 2)
		s.index.Append(s.alice, 3)

		s.Equal(uint64(3), s.index.TotalSupply())
		for i, want := range []id.TokenID{1, 2, 3} {
			got, err := s.index.TokenByIndex(uint64(i))
			s.Require().NoError(err)
			s.Equal(want, got)
		}
		s.Equal([]id.TokenID{1, 3}, s.ownerTokens(s.alice))
		s.Equal([]id.TokenID{2}, s.ownerTokens(s.bob))
	})
}

func (s *IndexSuite) TestBounds() {
	s.index.Append(s.alice, 1)

	s.Run("global index past end", func() {
		_, err := s.index.TokenByIndex(1)
		s.ErrorIs(err, ErrIndexOutOfBounds)
	})

	s.Run("owner index past end", func() {
		_, err := s.index.TokenOfOwnerByIndex(s.alice, 1)
		s.ErrorIs(err, ErrIndexOutOfBounds)
	})

	s.Run("unknown owner has empty range", func() {
		_, err := s.index.TokenOfOwnerByIndex(s.bob, 0)
		s.ErrorIs(err, ErrIndexOutOfBounds)
		s.Zero(s.index.OwnerCount(s.bob))
	})
}

func (s *IndexSuite) TestRemove() {
	s.Run("swaps last token into the removed slot", func() {
		for _, t := range []id.TokenID{1, 2, 3, 4} {
			s.index.Append(s.alice, t)
		}
		s.Require().NoError(s.index.Remove(s.alice, 2))
		s.Equal([]id.TokenID{1, 4, 3}, s.ownerTokens(s.alice))

		// Removal after a swap uses the updated position of the moved token.
		s.Require().NoError(s.index.Remove(s.alice, 4))
		s.Equal([]id.TokenID{1, 3}, s.ownerTokens(s.alice))
	})

	s.Run("global list is append-only", func() {
		s.Equal(uint64(4), s.index.TotalSupply())
	})

	s.Run("removing the last token empties the list", func() {
		s.Require().NoError(s.index.Remove(s.alice, 3))
		s.Require().NoError(s.index.Remove(s.alice, 1))
		s.Zero(s.index.OwnerCount(s.alice))
		s.Empty(s.index.TokensOf(s.alice))
	})

	s.Run("not indexed under owner", func() {
		s.index.Append(s.bob, 5)
		s.ErrorIs(s.index.Remove(s.alice, 5), ErrNotIndexed)
		s.ErrorIs(s.index.Remove(s.bob, 99), ErrNotIndexed)
	})

	s.Run("double removal fails", func() {
		s.Require().NoError(s.index.Remove(s.bob, 5))
		s.ErrorIs(s.index.Remove(s.bob, 5), ErrNotIndexed)
	})
}

func (s *IndexSuite) TestReassign() {
	s.index.Append(s.alice, 1)
	s.index.Append(s.alice, 2)

	s.Require().NoError(s.index.Reassign(s.alice, s.bob, 1))
	s.Equal([]id.TokenID{2}, s.ownerTokens(s.alice))
	s.Equal([]id.TokenID{1}, s.ownerTokens(s.bob))
	s.Equal(uint64(2), s.index.TotalSupply())

	s.ErrorIs(s.index.Reassign(s.alice, s.bob, 1), ErrNotIndexed)
}

func (s *IndexSuite) TestTokensOfReturnsCopy() {
	s.index.Append(s.alice, 1)
	tokens := s.index.TokensOf(s.alice)
	tokens[0] = 42
	s.Equal([]id.TokenID{1}, s.index.TokensOf(s.alice))
}

// TestConsistency checks every indexed token appears exactly once in the
// global view and exactly once in its owner's view.
func (s *IndexSuite) TestConsistency() {
	owners := []id.Address{s.alice, s.bob, common.HexToAddress("0xc0")}
	for t := id.TokenID(1); t <= 30; t++ {
		s.index.Append(owners[int(t)%len(owners)], t)
	}
	s.Require().NoError(s.index.Remove(owners[1], 4))
	s.index.addToOwner(owners[2], 4)

	global := map[id.TokenID]int{}
	for i := uint64(0); i < s.index.TotalSupply(); i++ {
		t, err := s.index.TokenByIndex(i)
		s.Require().NoError(err)
		global[t]++
	}
	perOwner := map[id.TokenID]int{}
	for _, o := range owners {
		for _, t := range s.ownerTokens(o) {
			perOwner[t]++
			s.Equal(o, s.index.holder[t])
		}
	}
	for t := id.TokenID(1); t <= 30; t++ {
		s.Equal(1, global[t], "token %d in global view", t)
		s.Equal(1, perOwner[t], "token %d in owner views", t)
	}
}
