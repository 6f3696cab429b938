package models

import (
	id "soulbound/pkg/domain"
)

// Token is the read model of an issued badge. Ownership lives in the
// ownership ledger; the event association is immutable once recorded.
type Token struct {
	ID      id.TokenID `json:"id"`
	EventID id.EventID `json:"event_id"`
	Owner   id.Address `json:"owner"`
	URI     string     `json:"uri"`
}

// RegistryStatus summarises registry-wide state for status queries.
type RegistryStatus struct {
	Name        string     `json:"name"`
	Symbol      string     `json:"symbol"`
	Owner       id.Address `json:"owner"`
	Paused      bool       `json:"paused"`
	TotalSupply uint64     `json:"total_supply"`
	LastEventID id.EventID `json:"last_event_id"`
	LastTokenID id.TokenID `json:"last_token_id"`
}
