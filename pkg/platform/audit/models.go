package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// apply different retention and routing.
type EventCategory string

const (
	// CategoryGovernance covers administrative changes: ownership, pause state,
	// event lifecycle and minter grants.
	CategoryGovernance EventCategory = "governance"

	// CategoryIssuance covers badges entering an account.
	CategoryIssuance EventCategory = "issuance"
)

// Event is emitted after a registry operation commits. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID     `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	// Seq is the registry journal sequence number the event was derived from.
	Seq     uint64 `json:"seq"`
	Action  string `json:"action"`
	ActorID string `json:"actor_id"`
	// Subject is the address the action is about: recipient, minter or new
	// owner. Empty for registry-wide actions such as pause.
	Subject   string `json:"subject,omitempty"`
	EventID   uint64 `json:"event_id,omitempty"`
	TokenID   uint64 `json:"token_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Payload is the JSON body written to external sinks.
func (e Event) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type AuditEvent string

const (
	EventEventCreated         AuditEvent = "event_created"
	EventEventDeactivated     AuditEvent = "event_deactivated"
	EventMinterAdded          AuditEvent = "minter_added"
	EventMinterRemoved        AuditEvent = "minter_removed"
	EventBadgeMinted          AuditEvent = "badge_minted"
	EventOwnershipTransferred AuditEvent = "ownership_transferred"
	EventPaused               AuditEvent = "paused"
	EventUnpaused             AuditEvent = "unpaused"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventEventCreated:         CategoryGovernance,
	EventEventDeactivated:     CategoryGovernance,
	EventMinterAdded:          CategoryGovernance,
	EventMinterRemoved:        CategoryGovernance,
	EventOwnershipTransferred: CategoryGovernance,
	EventPaused:               CategoryGovernance,
	EventUnpaused:             CategoryGovernance,

	EventBadgeMinted: CategoryIssuance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryGovernance.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryGovernance
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// StoreFunc adapts a function to Store.
type StoreFunc func(ctx context.Context, event Event) error

func (f StoreFunc) Append(ctx context.Context, event Event) error {
	return f(ctx, event)
}
