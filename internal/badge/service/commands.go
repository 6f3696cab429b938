package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"soulbound/internal/badge/models"
	"soulbound/internal/badge/registry"
	id "soulbound/pkg/domain"
)

// BatchResult reports the ids minted by a batch, in recipient order, and how
// many recipients were skipped.
type BatchResult struct {
	Minted  []id.TokenID `json:"minted"`
	Skipped int          `json:"skipped"`
}

func (s *Service) CreateEvent(ctx context.Context, caller id.Address, in models.EventInput) (models.Event, error) {
	var ev models.Event
	err := s.mutate(ctx, "create_event", caller, func(r *registry.Registry) error {
		eventID, err := r.CreateEvent(caller, in)
		if err != nil {
			return err
		}
		ev, _ = r.Event(eventID)
		return nil
	})
	if err != nil {
		return models.Event{}, err
	}
	s.metrics.IncrementEventsCreated()
	s.logger.InfoContext(ctx, "event created",
		"event_id", ev.ID,
		"organizer", ev.Organizer.Hex(),
	)
	return ev, nil
}

func (s *Service) DeactivateEvent(ctx context.Context, caller id.Address, eventID id.EventID) error {
	return s.mutate(ctx, "deactivate_event", caller, func(r *registry.Registry) error {
		return r.DeactivateEvent(caller, eventID)
	}, eventAttr(eventID))
}

func (s *Service) AddMinter(ctx context.Context, caller id.Address, eventID id.EventID, minter id.Address) error {
	return s.mutate(ctx, "add_minter", caller, func(r *registry.Registry) error {
		return r.AddMinter(caller, eventID, minter)
	}, eventAttr(eventID))
}

func (s *Service) RemoveMinter(ctx context.Context, caller id.Address, eventID id.EventID, minter id.Address) error {
	return s.mutate(ctx, "remove_minter", caller, func(r *registry.Registry) error {
		return r.RemoveMinter(caller, eventID, minter)
	}, eventAttr(eventID))
}

// Issue mints one badge and returns its read model.
func (s *Service) Issue(ctx context.Context, caller id.Address, eventID id.EventID, recipient id.Address) (models.Token, error) {
	start := time.Now()
	defer s.metrics.ObserveIssue("single", start)

	var token models.Token
	err := s.mutate(ctx, "issue", caller, func(r *registry.Registry) error {
		tokenID, err := r.Issue(caller, eventID, recipient)
		if err != nil {
			return err
		}
		token, err = r.Token(tokenID)
		return err
	}, eventAttr(eventID))
	if err != nil {
		return models.Token{}, err
	}
	s.metrics.AddBadgesMinted(1)
	s.logger.InfoContext(ctx, "badge issued",
		"event_id", eventID,
		"token_id", token.ID,
		"recipient", recipient.Hex(),
	)
	return token, nil
}

// BatchIssue mints for every eligible recipient. Under the halt policy a
// ledger failure is returned together with the ids minted before it.
func (s *Service) BatchIssue(ctx context.Context, caller id.Address, eventID id.EventID, recipients []id.Address) (BatchResult, error) {
	start := time.Now()
	defer s.metrics.ObserveIssue("batch", start)

	var minted []id.TokenID
	err := s.mutate(ctx, "batch_issue", caller, func(r *registry.Registry) error {
		var err error
		minted, err = r.BatchIssue(caller, eventID, recipients)
		return err
	}, eventAttr(eventID), attribute.Int("recipients", len(recipients)))

	res := BatchResult{Minted: minted}
	if res.Minted == nil {
		res.Minted = []id.TokenID{}
	}
	s.metrics.AddBadgesMinted(len(minted))
	if err != nil {
		return res, err
	}
	res.Skipped = len(recipients) - len(minted)
	s.metrics.AddBatchSkipped(res.Skipped)
	s.logger.InfoContext(ctx, "batch issued",
		"event_id", eventID,
		"minted", len(minted),
		"skipped", res.Skipped,
	)
	return res, nil
}

func (s *Service) Pause(ctx context.Context, caller id.Address) error {
	return s.mutate(ctx, "pause", caller, func(r *registry.Registry) error {
		return r.Pause(caller)
	})
}

func (s *Service) Unpause(ctx context.Context, caller id.Address) error {
	return s.mutate(ctx, "unpause", caller, func(r *registry.Registry) error {
		return r.Unpause(caller)
	})
}

func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner id.Address) error {
	err := s.mutate(ctx, "transfer_ownership", caller, func(r *registry.Registry) error {
		return r.TransferOwnership(caller, newOwner)
	})
	if err == nil {
		s.logger.InfoContext(ctx, "registry ownership transferred",
			"previous_owner", caller.Hex(),
			"new_owner", newOwner.Hex(),
		)
	}
	return err
}

// TransferFrom, Approve and SetApprovalForAll always fail: badges are bound
// to the account they were issued to.
func (s *Service) TransferFrom(ctx context.Context, caller, from, to id.Address, tokenID id.TokenID) error {
	return s.mutate(ctx, "transfer", caller, func(r *registry.Registry) error {
		return r.TransferFrom(caller, from, to, tokenID)
	}, tokenAttr(tokenID))
}

func (s *Service) SafeTransferFrom(ctx context.Context, caller, from, to id.Address, tokenID id.TokenID, data []byte) error {
	return s.mutate(ctx, "transfer", caller, func(r *registry.Registry) error {
		if len(data) > 0 {
			return r.SafeTransferFromWithData(caller, from, to, tokenID, data)
		}
		return r.SafeTransferFrom(caller, from, to, tokenID)
	}, tokenAttr(tokenID))
}

func (s *Service) Approve(ctx context.Context, caller, approved id.Address, tokenID id.TokenID) error {
	return s.mutate(ctx, "approve", caller, func(r *registry.Registry) error {
		return r.Approve(caller, approved, tokenID)
	}, tokenAttr(tokenID))
}

func (s *Service) SetApprovalForAll(ctx context.Context, caller, operator id.Address, approved bool) error {
	return s.mutate(ctx, "set_approval_for_all", caller, func(r *registry.Registry) error {
		return r.SetApprovalForAll(caller, operator, approved)
	})
}

func eventAttr(eventID id.EventID) attribute.KeyValue {
	return attribute.Int64("event_id", int64(eventID))
}

func tokenAttr(tokenID id.TokenID) attribute.KeyValue {
	return attribute.Int64("token_id", int64(tokenID))
}
