package registry

import (
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
)

func (r *Registry) Owner() id.Address {
	return r.owner
}

// TransferOwnership hands the admin role to newOwner.
func (r *Registry) TransferOwnership(caller, newOwner id.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if newOwner == id.ZeroAddress {
		return ErrInvalidOwner
	}
	previous := r.owner
	r.owner = newOwner
	r.record(caller, models.OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner})
	return nil
}

func (r *Registry) requireOwner(caller id.Address) error {
	if caller != r.owner {
		return ErrUnauthorized
	}
	return nil
}
