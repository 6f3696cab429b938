package service

import (
	"soulbound/internal/badge/models"
	"soulbound/internal/badge/registry"
	id "soulbound/pkg/domain"
)

func (s *Service) Status() models.RegistryStatus {
	var st models.RegistryStatus
	s.read(func(r *registry.Registry) { st = r.Status() })
	return st
}

func (s *Service) ListEvents() []models.Event {
	var events []models.Event
	s.read(func(r *registry.Registry) { events = r.ListEvents() })
	return events
}

// Event returns the event record or registry.ErrEventNotFound.
func (s *Service) Event(eventID id.EventID) (models.Event, error) {
	var (
		ev models.Event
		ok bool
	)
	s.read(func(r *registry.Registry) { ev, ok = r.Event(eventID) })
	if !ok {
		return models.Event{}, registry.ErrEventNotFound
	}
	return ev, nil
}

func (s *Service) IsMinter(eventID id.EventID, addr id.Address) bool {
	var ok bool
	s.read(func(r *registry.Registry) { ok = r.IsMinter(eventID, addr) })
	return ok
}

func (s *Service) HasAttended(eventID id.EventID, addr id.Address) bool {
	var ok bool
	s.read(func(r *registry.Registry) { ok = r.HasAttended(eventID, addr) })
	return ok
}

func (s *Service) Token(tokenID id.TokenID) (models.Token, error) {
	var (
		token models.Token
		err   error
	)
	s.read(func(r *registry.Registry) { token, err = r.Token(tokenID) })
	return token, err
}

func (s *Service) TokenURI(tokenID id.TokenID) (string, error) {
	var (
		uri string
		err error
	)
	s.read(func(r *registry.Registry) { uri, err = r.TokenURI(tokenID) })
	return uri, err
}

func (s *Service) OwnerOf(tokenID id.TokenID) (id.Address, error) {
	var (
		owner id.Address
		err   error
	)
	s.read(func(r *registry.Registry) { owner, err = r.OwnerOf(tokenID) })
	return owner, err
}

func (s *Service) BalanceOf(owner id.Address) uint64 {
	var n uint64
	s.read(func(r *registry.Registry) { n = r.BalanceOf(owner) })
	return n
}

func (s *Service) TotalSupply() uint64 {
	var n uint64
	s.read(func(r *registry.Registry) { n = r.TotalSupply() })
	return n
}

func (s *Service) TokenByIndex(i uint64) (models.Token, error) {
	var (
		token models.Token
		err   error
	)
	s.read(func(r *registry.Registry) {
		var tokenID id.TokenID
		if tokenID, err = r.TokenByIndex(i); err == nil {
			token, err = r.Token(tokenID)
		}
	})
	return token, err
}

func (s *Service) TokenOfOwnerByIndex(owner id.Address, i uint64) (models.Token, error) {
	var (
		token models.Token
		err   error
	)
	s.read(func(r *registry.Registry) {
		var tokenID id.TokenID
		if tokenID, err = r.TokenOfOwnerByIndex(owner, i); err == nil {
			token, err = r.Token(tokenID)
		}
	})
	return token, err
}

// TokensOfOwner returns the owner's badges in enumeration order.
func (s *Service) TokensOfOwner(owner id.Address) []models.Token {
	var tokens []models.Token
	s.read(func(r *registry.Registry) {
		ids := r.TokensOfOwner(owner)
		tokens = make([]models.Token, 0, len(ids))
		for _, tokenID := range ids {
			if token, err := r.Token(tokenID); err == nil {
				tokens = append(tokens, token)
			}
		}
	})
	return tokens
}

func (s *Service) GetApproved(tokenID id.TokenID) (id.Address, error) {
	var (
		addr id.Address
		err  error
	)
	s.read(func(r *registry.Registry) { addr, err = r.GetApproved(tokenID) })
	return addr, err
}

func (s *Service) IsApprovedForAll(owner, operator id.Address) bool {
	var ok bool
	s.read(func(r *registry.Registry) { ok = r.IsApprovedForAll(owner, operator) })
	return ok
}

func (s *Service) SupportsInterface(interfaceID [4]byte) bool {
	var ok bool
	s.read(func(r *registry.Registry) { ok = r.SupportsInterface(interfaceID) })
	return ok
}

// Journal returns the entries with Seq > since, oldest first.
func (s *Service) Journal(since uint64) []models.JournalEntry {
	var entries []models.JournalEntry
	s.read(func(r *registry.Registry) { entries = r.JournalSince(since) })
	return entries
}
