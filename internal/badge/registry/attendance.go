package registry

import (
	id "soulbound/pkg/domain"
)

func (r *Registry) HasAttended(eventID id.EventID, addr id.Address) bool {
	return r.attended[eventID][addr]
}

// markAttended records a successful issuance. It does not re-check; callers
// verify !HasAttended first.
func (r *Registry) markAttended(eventID id.EventID, addr id.Address) {
	set, ok := r.attended[eventID]
	if !ok {
		set = make(map[id.Address]bool)
		r.attended[eventID] = set
	}
	set[addr] = true
}
