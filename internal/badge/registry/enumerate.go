package registry

import (
	id "soulbound/pkg/domain"
)

func (r *Registry) TotalSupply() uint64 {
	return r.index.TotalSupply()
}

func (r *Registry) TokenByIndex(i uint64) (id.TokenID, error) {
	return r.index.TokenByIndex(i)
}

func (r *Registry) TokenOfOwnerByIndex(owner id.Address, i uint64) (id.TokenID, error) {
	return r.index.TokenOfOwnerByIndex(owner, i)
}

// TokensOfOwner returns owner's badges in enumeration order.
func (r *Registry) TokensOfOwner(owner id.Address) []id.TokenID {
	return r.index.TokensOf(owner)
}

func (r *Registry) BalanceOf(owner id.Address) uint64 {
	return r.ledger.BalanceOf(owner)
}

func (r *Registry) OwnerOf(tokenID id.TokenID) (id.Address, error) {
	owner, err := r.ledger.OwnerOf(tokenID)
	if err != nil {
		return id.ZeroAddress, ErrNonexistentToken
	}
	return owner, nil
}
