package models

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
)

type EventModelSuite struct {
	suite.Suite
	organizer id.Address
}

func TestEventModelSuite(t *testing.T) {
	suite.Run(t, new(EventModelSuite))
}

func (s *EventModelSuite) SetupTest() {
	s.organizer = common.HexToAddress("0x00000000000000000000000000000000000000aa")
}

func (s *EventModelSuite) validInput() EventInput {
	return EventInput{
		Name:        "ETH Denver 2025",
		Description: "Annual conference",
		ImageRef:    "ipfs://cid",
		Date:        "2025-02-23",
		Organizer:   s.organizer,
	}
}

// TestConstruction verifies constructor invariants.
func (s *EventModelSuite) TestConstruction() {
	s.Run("valid input produces an active event", func() {
		ev, err := NewEvent(1, s.validInput())
		s.Require().NoError(err)
		s.Equal(id.EventID(1), ev.ID)
		s.True(ev.IsActive())
		s.Equal(s.organizer, ev.Organizer)
	})

	s.Run("optional metadata may be empty", func() {
		in := s.validInput()
		in.Description, in.ImageRef, in.Date = "", "", ""
		_, err := NewEvent(1, in)
		s.NoError(err)
	})

	s.Run("zero id rejected", func() {
		_, err := NewEvent(0, s.validInput())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("empty name rejected", func() {
		in := s.validInput()
		in.Name = ""
		_, err := NewEvent(1, in)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("overlong name rejected", func() {
		in := s.validInput()
		in.Name = strings.Repeat("a", maxEventNameLength+1)
		_, err := NewEvent(1, in)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("zero organizer rejected", func() {
		in := s.validInput()
		in.Organizer = id.ZeroAddress
		_, err := NewEvent(1, in)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// TestDeactivation verifies the one-way lifecycle.
func (s *EventModelSuite) TestDeactivation() {
	ev, err := NewEvent(1, s.validInput())
	s.Require().NoError(err)

	ev.Deactivate()
	s.False(ev.IsActive())

	ev.Deactivate()
	s.False(ev.IsActive(), "deactivating twice stays inactive")
}

func (s *EventModelSuite) TestNormalize() {
	in := EventInput{Name: "  Meetup \n", Date: " 2025-01-01 "}
	in.Normalize()
	s.Equal("Meetup", in.Name)
	s.Equal("2025-01-01", in.Date)
}

func (s *EventModelSuite) TestJournalKinds() {
	events := map[Kind]DomainEvent{
		KindEventCreated:         EventCreated{},
		KindEventDeactivated:     EventDeactivated{},
		KindMinterAdded:          MinterAdded{},
		KindMinterRemoved:        MinterRemoved{},
		KindBadgeMinted:          BadgeMinted{},
		KindOwnershipTransferred: OwnershipTransferred{},
		KindPaused:               Paused{},
		KindUnpaused:             Unpaused{},
	}
	for kind, ev := range events {
		s.Equal(kind, ev.Kind())
	}
}
