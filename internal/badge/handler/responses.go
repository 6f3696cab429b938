package handler

import (
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
)

type EventsResponse struct {
	Events []models.Event `json:"events"`
	Total  int            `json:"total"`
}

type TokensResponse struct {
	Owner  id.Address     `json:"owner"`
	Tokens []models.Token `json:"tokens"`
}

type BalanceResponse struct {
	Owner   id.Address `json:"owner"`
	Balance uint64     `json:"balance"`
}

type FlagResponse struct {
	Value bool `json:"value"`
}

type AddressResponse struct {
	Address id.Address `json:"address"`
}

type JournalEntryResponse struct {
	Seq   uint64             `json:"seq"`
	Kind  models.Kind        `json:"kind"`
	Actor id.Address         `json:"actor"`
	Event models.DomainEvent `json:"event"`
}

type JournalResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
	Next    uint64                 `json:"next"`
}

func toJournalResponse(since uint64, entries []models.JournalEntry) JournalResponse {
	out := JournalResponse{Entries: make([]JournalEntryResponse, 0, len(entries)), Next: since}
	for _, e := range entries {
		out.Entries = append(out.Entries, JournalEntryResponse{
			Seq:   e.Seq,
			Kind:  e.Event.Kind(),
			Actor: e.Actor,
			Event: e.Event,
		})
		out.Next = e.Seq
	}
	return out
}
