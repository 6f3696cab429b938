package registry

import (
	dErrors "soulbound/pkg/domain-errors"
)

// Rejections returned by registry operations. Callers may match the exact
// value with errors.Is or the category with dErrors.HasCode.
var (
	ErrUnauthorized           = dErrors.New(dErrors.CodeUnauthorized, "caller is not the owner")
	ErrInvalidOwner           = dErrors.New(dErrors.CodeValidation, "new owner is the zero address")
	ErrInvalidMinter          = dErrors.New(dErrors.CodeValidation, "minter is the zero address")
	ErrPaused                 = dErrors.New(dErrors.CodeInvalidState, "registry is paused")
	ErrEventDoesNotExist      = dErrors.New(dErrors.CodeInvalidState, "event does not exist or is not active")
	ErrOnlyEventMinterOrOwner = dErrors.New(dErrors.CodeUnauthorized, "caller is not an event minter or the owner")
	ErrTokenAlreadyMinted     = dErrors.New(dErrors.CodeConflict, "recipient already holds a badge for this event")
	ErrTransferDisabled       = dErrors.New(dErrors.CodeTransferDisabled, "badges are soulbound and cannot be transferred or approved")
	ErrEventNotFound          = dErrors.New(dErrors.CodeNotFound, "event not found")
	ErrNonexistentToken       = dErrors.New(dErrors.CodeNotFound, "token does not exist")
)

// mintFailed wraps a ledger rejection. Use dErrors.HasCode(err,
// dErrors.CodeMintFailed) to detect it.
func mintFailed(err error) error {
	return dErrors.Wrap(err, dErrors.CodeMintFailed, "ledger rejected mint")
}
