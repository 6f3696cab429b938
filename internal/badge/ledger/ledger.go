// Package ledger provides the base token-ownership capability the registry
// builds on: one exclusive owner per token id and a balance per owner.
package ledger

import (
	"fmt"
	"sync"

	id "soulbound/pkg/domain"
	"soulbound/pkg/platform/sentinel"
)

var (
	// ErrInvalidReceiver is returned when minting to the zero address.
	ErrInvalidReceiver = fmt.Errorf("invalid receiver: %w", sentinel.ErrInvalidState)
	// ErrTokenExists is returned when the token id already has an owner.
	ErrTokenExists = fmt.Errorf("token already minted: %w", sentinel.ErrConflict)
	// ErrTokenNotFound is returned by OwnerOf for ids that were never minted.
	ErrTokenNotFound = fmt.Errorf("token: %w", sentinel.ErrNotFound)
)

// InMemory keeps ownership in process memory.
type InMemory struct {
	mu       sync.RWMutex
	owners   map[id.TokenID]id.Address
	balances map[id.Address]uint64
}

func NewInMemory() *InMemory {
	return &InMemory{
		owners:   make(map[id.TokenID]id.Address),
		balances: make(map[id.Address]uint64),
	}
}

// Mint assigns tokenID to owner. Fails if the id is already owned or owner is
// the zero address.
func (l *InMemory) Mint(owner id.Address, tokenID id.TokenID) error {
	if owner == id.ZeroAddress {
		return ErrInvalidReceiver
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.owners[tokenID]; exists {
		return ErrTokenExists
	}
	l.owners[tokenID] = owner
	l.balances[owner]++
	return nil
}

func (l *InMemory) OwnerOf(tokenID id.TokenID) (id.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	owner, ok := l.owners[tokenID]
	if !ok {
		return id.ZeroAddress, ErrTokenNotFound
	}
	return owner, nil
}

// BalanceOf never fails; unknown owners hold zero tokens.
func (l *InMemory) BalanceOf(owner id.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[owner]
}
