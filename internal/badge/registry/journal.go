package registry

import (
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
)

func (r *Registry) record(actor id.Address, ev models.DomainEvent) {
	r.journal = append(r.journal, models.JournalEntry{
		Seq:   uint64(len(r.journal)) + 1,
		Actor: actor,
		Event: ev,
	})
}

// JournalSeq is the sequence number of the latest entry, zero when empty.
func (r *Registry) JournalSeq() uint64 {
	return uint64(len(r.journal))
}

// JournalSince returns copies of the entries with Seq > seq, oldest first.
func (r *Registry) JournalSince(seq uint64) []models.JournalEntry {
	if seq >= uint64(len(r.journal)) {
		return nil
	}
	return append([]models.JournalEntry(nil), r.journal[seq:]...)
}
