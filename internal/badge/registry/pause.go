package registry

import (
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
)

// Pause stops all issuance. Pausing a paused registry succeeds and records
// nothing.
func (r *Registry) Pause(caller id.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if r.paused {
		return nil
	}
	r.paused = true
	r.record(caller, models.Paused{})
	return nil
}

func (r *Registry) Unpause(caller id.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if !r.paused {
		return nil
	}
	r.paused = false
	r.record(caller, models.Unpaused{})
	return nil
}

func (r *Registry) IsPaused() bool {
	return r.paused
}

func (r *Registry) requireNotPaused() error {
	if r.paused {
		return ErrPaused
	}
	return nil
}
