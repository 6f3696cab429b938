package models

import (
	id "soulbound/pkg/domain"
)

// Kind names a domain event in the journal and in audit sinks.
type Kind string

const (
	KindEventCreated         Kind = "event_created"
	KindEventDeactivated     Kind = "event_deactivated"
	KindMinterAdded          Kind = "minter_added"
	KindMinterRemoved        Kind = "minter_removed"
	KindBadgeMinted          Kind = "badge_minted"
	KindOwnershipTransferred Kind = "ownership_transferred"
	KindPaused               Kind = "paused"
	KindUnpaused             Kind = "unpaused"
)

// DomainEvent is a fact recorded by the registry after a successful mutation.
type DomainEvent interface {
	Kind() Kind
}

type EventCreated struct {
	EventID   id.EventID `json:"event_id"`
	Name      string     `json:"name"`
	Organizer id.Address `json:"organizer"`
}

type EventDeactivated struct {
	EventID id.EventID `json:"event_id"`
}

type MinterAdded struct {
	EventID id.EventID `json:"event_id"`
	Minter  id.Address `json:"minter"`
}

type MinterRemoved struct {
	EventID id.EventID `json:"event_id"`
	Minter  id.Address `json:"minter"`
}

type BadgeMinted struct {
	Recipient id.Address `json:"recipient"`
	TokenID   id.TokenID `json:"token_id"`
	EventID   id.EventID `json:"event_id"`
}

type OwnershipTransferred struct {
	PreviousOwner id.Address `json:"previous_owner"`
	NewOwner      id.Address `json:"new_owner"`
}

type Paused struct{}

type Unpaused struct{}

func (EventCreated) Kind() Kind         { return KindEventCreated }
func (EventDeactivated) Kind() Kind     { return KindEventDeactivated }
func (MinterAdded) Kind() Kind          { return KindMinterAdded }
func (MinterRemoved) Kind() Kind        { return KindMinterRemoved }
func (BadgeMinted) Kind() Kind          { return KindBadgeMinted }
func (OwnershipTransferred) Kind() Kind { return KindOwnershipTransferred }
func (Paused) Kind() Kind               { return KindPaused }
func (Unpaused) Kind() Kind             { return KindUnpaused }

// JournalEntry is one record of the append-only domain event log. Seq starts
// at 1 and increases by one per entry.
type JournalEntry struct {
	Seq   uint64      `json:"seq"`
	Actor id.Address  `json:"actor"`
	Event DomainEvent `json:"event"`
}
