package admin

import (
	audit "soulbound/pkg/platform/audit"
)

// AuditEventsResponse wraps a page of audit events for the ops API.
type AuditEventsResponse struct {
	Events []audit.Event `json:"events"`
	Total  int           `json:"total"`
}

// RelayResponse reports one outbox relay pass.
type RelayResponse struct {
	Published int `json:"published"`
}

// BreakerResponse reports the state of the audit sink circuit breaker.
type BreakerResponse struct {
	Name  string `json:"name"`
	State string `json:"state"`
}
