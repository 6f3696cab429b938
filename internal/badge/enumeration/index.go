// Package enumeration keeps the two ordered views over issued badges: the
// global issuance order and each holder's own list.
//
// Both views support O(1) append. The owner view also supports O(1) removal
// by swapping the removed token with the last one and popping, using the
// recorded position of every token instead of scanning. The global view is
// append-only because badges are never burned.
package enumeration

import (
	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
)

var (
	ErrIndexOutOfBounds = dErrors.New(dErrors.CodeNotFound, "index out of bounds")
	ErrNotIndexed       = dErrors.New(dErrors.CodeNotFound, "token is not indexed under owner")
)

// Index is not safe for concurrent use; the registry serializes access.
type Index struct {
	all      []id.TokenID
	owned    map[id.Address][]id.TokenID
	ownedPos map[id.TokenID]int
	holder   map[id.TokenID]id.Address
}

func New() *Index {
	return &Index{
		owned:    make(map[id.Address][]id.TokenID),
		ownedPos: make(map[id.TokenID]int),
		holder:   make(map[id.TokenID]id.Address),
	}
}

// Append records tokenID at the end of the global list and of owner's list.
// tokenID must not already be indexed.
func (x *Index) Append(owner id.Address, tokenID id.TokenID) {
	x.all = append(x.all, tokenID)
	x.addToOwner(owner, tokenID)
}

// Remove drops tokenID from owner's list in constant time. The last token of
// the list takes the removed slot, so owner order is not preserved across
// removals.
func (x *Index) Remove(owner id.Address, tokenID id.TokenID) error {
	if h, ok := x.holder[tokenID]; !ok || h != owner {
		return ErrNotIndexed
	}
	list := x.owned[owner]
	pos := x.ownedPos[tokenID]
	last := len(list) - 1
	if pos != last {
		moved := list[last]
		list[pos] = moved
		x.ownedPos[moved] = pos
	}
	list = list[:last]
	if len(list) == 0 {
		delete(x.owned, owner)
	} else {
		x.owned[owner] = list
	}
	delete(x.ownedPos, tokenID)
	delete(x.holder, tokenID)
	return nil
}

// Reassign moves tokenID from one owner's list to another's. The global list
// is untouched.
func (x *Index) Reassign(from, to id.Address, tokenID id.TokenID) error {
	if err := x.Remove(from, tokenID); err != nil {
		return err
	}
	x.addToOwner(to, tokenID)
	return nil
}

func (x *Index) addToOwner(owner id.Address, tokenID id.TokenID) {
	x.ownedPos[tokenID] = len(x.owned[owner])
	x.owned[owner] = append(x.owned[owner], tokenID)
	x.holder[tokenID] = owner
}

func (x *Index) TotalSupply() uint64 {
	return uint64(len(x.all))
}

func (x *Index) TokenByIndex(i uint64) (id.TokenID, error) {
	if i >= uint64(len(x.all)) {
		return 0, ErrIndexOutOfBounds
	}
	return x.all[i], nil
}

func (x *Index) TokenOfOwnerByIndex(owner id.Address, i uint64) (id.TokenID, error) {
	list := x.owned[owner]
	if i >= uint64(len(list)) {
		return 0, ErrIndexOutOfBounds
	}
	return list[i], nil
}

// OwnerCount is the length of owner's list.
func (x *Index) OwnerCount(owner id.Address) uint64 {
	return uint64(len(x.owned[owner]))
}

// TokensOf returns a copy of owner's list in index order.
func (x *Index) TokensOf(owner id.Address) []id.TokenID {
	return append([]id.TokenID{}, x.owned[owner]...)
}
