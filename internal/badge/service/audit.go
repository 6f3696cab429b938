package service

import (
	"context"

	"soulbound/internal/badge/models"
	audit "soulbound/pkg/platform/audit"
	"soulbound/pkg/requestcontext"
)

// toAuditEvent flattens a journal entry into the sink-agnostic audit shape
// and stamps it with the request metadata carried by ctx.
func toAuditEvent(ctx context.Context, entry models.JournalEntry) audit.Event {
	ev := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Seq:       entry.Seq,
		Action:    string(entry.Event.Kind()),
		ActorID:   entry.Actor.Hex(),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
	ev.Category = audit.AuditEvent(ev.Action).Category()

	switch e := entry.Event.(type) {
	case models.EventCreated:
		ev.EventID = uint64(e.EventID)
		ev.Subject = e.Organizer.Hex()
		ev.Detail = e.Name
	case models.EventDeactivated:
		ev.EventID = uint64(e.EventID)
	case models.MinterAdded:
		ev.EventID = uint64(e.EventID)
		ev.Subject = e.Minter.Hex()
	case models.MinterRemoved:
		ev.EventID = uint64(e.EventID)
		ev.Subject = e.Minter.Hex()
	case models.BadgeMinted:
		ev.EventID = uint64(e.EventID)
		ev.TokenID = uint64(e.TokenID)
		ev.Subject = e.Recipient.Hex()
	case models.OwnershipTransferred:
		ev.Subject = e.NewOwner.Hex()
		ev.Detail = "previous_owner=" + e.PreviousOwner.Hex()
	}
	return ev
}
