package registry

import (
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
)

// CreateEvent allocates the next event id and grants the organizer minter
// rights for it.
func (r *Registry) CreateEvent(caller id.Address, in models.EventInput) (id.EventID, error) {
	if err := r.requireOwner(caller); err != nil {
		return 0, err
	}
	in.Normalize()
	eventID := r.LastEventID() + 1
	ev, err := models.NewEvent(eventID, in)
	if err != nil {
		return 0, err
	}

	r.events = append(r.events, ev)
	r.minters[eventID] = map[id.Address]bool{ev.Organizer: true}
	r.record(caller, models.EventCreated{EventID: eventID, Name: ev.Name, Organizer: ev.Organizer})
	return eventID, nil
}

// DeactivateEvent permanently stops issuance for an event. Deactivating an
// inactive event succeeds and records nothing.
func (r *Registry) DeactivateEvent(caller id.Address, eventID id.EventID) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	ev, ok := r.lookup(eventID)
	if !ok {
		return ErrEventNotFound
	}
	if !ev.IsActive() {
		return nil
	}
	ev.Deactivate()
	r.record(caller, models.EventDeactivated{EventID: eventID})
	return nil
}

// AddMinter grants issuance rights on an existing event, active or not.
func (r *Registry) AddMinter(caller id.Address, eventID id.EventID, minter id.Address) error {
	if err := r.checkMinterChange(caller, eventID, minter); err != nil {
		return err
	}
	r.minters[eventID][minter] = true
	r.record(caller, models.MinterAdded{EventID: eventID, Minter: minter})
	return nil
}

// RemoveMinter revokes issuance rights, including the organizer's implicit
// grant.
func (r *Registry) RemoveMinter(caller id.Address, eventID id.EventID, minter id.Address) error {
	if err := r.checkMinterChange(caller, eventID, minter); err != nil {
		return err
	}
	delete(r.minters[eventID], minter)
	r.record(caller, models.MinterRemoved{EventID: eventID, Minter: minter})
	return nil
}

func (r *Registry) checkMinterChange(caller id.Address, eventID id.EventID, minter id.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if _, ok := r.lookup(eventID); !ok {
		return ErrEventNotFound
	}
	if minter == id.ZeroAddress {
		return ErrInvalidMinter
	}
	return nil
}

func (r *Registry) lookup(eventID id.EventID) (*models.Event, bool) {
	if eventID == 0 || uint64(eventID) > uint64(len(r.events)) {
		return nil, false
	}
	return r.events[eventID-1], true
}

// Queries below return zero values for ids that were never allocated.

func (r *Registry) LastEventID() id.EventID {
	return id.EventID(len(r.events))
}

// Event returns a copy of the record and whether it exists.
func (r *Registry) Event(eventID id.EventID) (models.Event, bool) {
	ev, ok := r.lookup(eventID)
	if !ok {
		return models.Event{}, false
	}
	return *ev, true
}

// ListEvents returns copies of every event in id order.
func (r *Registry) ListEvents() []models.Event {
	out := make([]models.Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, *ev)
	}
	return out
}

func (r *Registry) EventName(eventID id.EventID) string {
	ev, _ := r.Event(eventID)
	return ev.Name
}

func (r *Registry) EventOrganizer(eventID id.EventID) id.Address {
	ev, _ := r.Event(eventID)
	return ev.Organizer
}

func (r *Registry) IsActive(eventID id.EventID) bool {
	ev, _ := r.Event(eventID)
	return ev.Active
}

func (r *Registry) IsMinter(eventID id.EventID, addr id.Address) bool {
	return r.minters[eventID][addr]
}
