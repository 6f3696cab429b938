package models

import (
	"strings"

	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
)

const maxEventNameLength = 128

// Event is the aggregate root for a registered event.
//
// Invariants:
//   - ID is allocated sequentially from 1 and never reused
//   - Name is non-empty and at most 128 characters
//   - Organizer is not the zero address
//   - Active starts true; the only transition is active -> inactive
//   - Description, ImageRef and Date are optional metadata
type Event struct {
	ID          id.EventID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageRef    string     `json:"image"`
	Date        string     `json:"date"`
	Organizer   id.Address `json:"organizer"`
	Active      bool       `json:"active"`
}

// EventInput carries the caller-supplied fields for a new event.
type EventInput struct {
	Name        string
	Description string
	ImageRef    string
	Date        string
	Organizer   id.Address
}

// Normalize trims whitespace from free-text fields.
func (in *EventInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageRef = strings.TrimSpace(in.ImageRef)
	in.Date = strings.TrimSpace(in.Date)
}

func NewEvent(eventID id.EventID, in EventInput) (*Event, error) {
	if eventID.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "event id must be positive")
	}
	if in.Name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "event name cannot be empty")
	}
	if len(in.Name) > maxEventNameLength {
		return nil, dErrors.New(dErrors.CodeValidation, "event name must be 128 characters or less")
	}
	if in.Organizer == id.ZeroAddress {
		return nil, dErrors.New(dErrors.CodeValidation, "organizer cannot be the zero address")
	}
	return &Event{
		ID:          eventID,
		Name:        in.Name,
		Description: in.Description,
		ImageRef:    in.ImageRef,
		Date:        in.Date,
		Organizer:   in.Organizer,
		Active:      true,
	}, nil
}

func (e *Event) IsActive() bool {
	return e.Active
}

// Deactivate closes the event for issuance. Calling it on an inactive event
// is a no-op; there is no way back.
func (e *Event) Deactivate() {
	e.Active = false
}
