package registry

import (
	id "soulbound/pkg/domain"
)

// ERC-165 interface identifiers the registry answers true for.
var supportedInterfaces = map[[4]byte]struct{}{
	{0x01, 0xff, 0xc9, 0xa7}: {}, // ERC-165
	{0x80, 0xac, 0x58, 0xcd}: {}, // ERC-721
	{0x5b, 0x5e, 0x13, 0x9f}: {}, // ERC-721 Metadata
	{0x78, 0x0e, 0x9d, 0x63}: {}, // ERC-721 Enumerable
}

// The transfer and approval family is disabled for every caller and every
// argument. Badges only ever move into an account through Issue and
// BatchIssue.

func (r *Registry) TransferFrom(_, _, _ id.Address, _ id.TokenID) error {
	return ErrTransferDisabled
}

func (r *Registry) SafeTransferFrom(_, _, _ id.Address, _ id.TokenID) error {
	return ErrTransferDisabled
}

func (r *Registry) SafeTransferFromWithData(_, _, _ id.Address, _ id.TokenID, _ []byte) error {
	return ErrTransferDisabled
}

func (r *Registry) Approve(_, _ id.Address, _ id.TokenID) error {
	return ErrTransferDisabled
}

func (r *Registry) SetApprovalForAll(_, _ id.Address, _ bool) error {
	return ErrTransferDisabled
}

// GetApproved is always the zero address for an existing token.
func (r *Registry) GetApproved(tokenID id.TokenID) (id.Address, error) {
	if _, err := r.OwnerOf(tokenID); err != nil {
		return id.ZeroAddress, err
	}
	return id.ZeroAddress, nil
}

func (r *Registry) IsApprovedForAll(_, _ id.Address) bool {
	return false
}

func (r *Registry) SupportsInterface(interfaceID [4]byte) bool {
	_, ok := supportedInterfaces[interfaceID]
	return ok
}
