package registry

import (
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
)

// Issue mints one badge for eventID to recipient. Checks run in a fixed
// order and the first failure wins: pause, event active, caller role,
// attendance.
func (r *Registry) Issue(caller id.Address, eventID id.EventID, recipient id.Address) (id.TokenID, error) {
	if err := r.checkIssuer(caller, eventID); err != nil {
		return 0, err
	}
	if r.HasAttended(eventID, recipient) {
		return 0, ErrTokenAlreadyMinted
	}
	return r.mint(caller, eventID, recipient)
}

// BatchIssue mints for each recipient in order after checking pause, event
// and caller role once. Recipients that already attended are skipped, so are
// recipients the ledger rejects unless the registry uses BatchHalt. The
// result lists only ids actually minted, in input order.
//
// Under BatchHalt a ledger rejection stops the batch and is returned with
// the ids minted before it. Those earlier mints stay committed.
func (r *Registry) BatchIssue(caller id.Address, eventID id.EventID, recipients []id.Address) ([]id.TokenID, error) {
	if err := r.checkIssuer(caller, eventID); err != nil {
		return nil, err
	}
	minted := make([]id.TokenID, 0, len(recipients))
	for _, recipient := range recipients {
		if r.HasAttended(eventID, recipient) {
			continue
		}
		tokenID, err := r.mint(caller, eventID, recipient)
		if err != nil {
			if r.batchPolicy == BatchHalt && dErrors.HasCode(err, dErrors.CodeMintFailed) {
				return minted, err
			}
			continue
		}
		minted = append(minted, tokenID)
	}
	return minted, nil
}

func (r *Registry) checkIssuer(caller id.Address, eventID id.EventID) error {
	if err := r.requireNotPaused(); err != nil {
		return err
	}
	ev, ok := r.lookup(eventID)
	if !ok || !ev.IsActive() {
		return ErrEventDoesNotExist
	}
	if caller != r.owner && !r.IsMinter(eventID, caller) {
		return ErrOnlyEventMinterOrOwner
	}
	return nil
}

// mint is the only step that can fail after the checks pass. Every mutation
// that follows the ledger call is infallible, so a rejected mint leaves the
// registry untouched.
func (r *Registry) mint(caller id.Address, eventID id.EventID, recipient id.Address) (id.TokenID, error) {
	tokenID := r.lastTokenID + 1
	if err := r.ledger.Mint(recipient, tokenID); err != nil {
		return 0, mintFailed(err)
	}
	r.lastTokenID = tokenID
	r.tokenEvents[tokenID] = eventID
	r.index.Append(recipient, tokenID)
	r.markAttended(eventID, recipient)
	r.record(caller, models.BadgeMinted{Recipient: recipient, TokenID: tokenID, EventID: eventID})
	return tokenID, nil
}

// TokenEvent returns the event a badge was issued under, or zero.
func (r *Registry) TokenEvent(tokenID id.TokenID) id.EventID {
	return r.tokenEvents[tokenID]
}

func (r *Registry) LastTokenID() id.TokenID {
	return r.lastTokenID
}

// Token assembles the read model of an issued badge.
func (r *Registry) Token(tokenID id.TokenID) (models.Token, error) {
	owner, err := r.OwnerOf(tokenID)
	if err != nil {
		return models.Token{}, err
	}
	eventID := r.tokenEvents[tokenID]
	return models.Token{
		ID:      tokenID,
		EventID: eventID,
		Owner:   owner,
		URI:     r.uri.Resolve(eventID, tokenID),
	}, nil
}
