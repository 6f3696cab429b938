package domain

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	dErrors "soulbound/pkg/domain-errors"
)

// Address identifies an account: the registry owner, an organizer, a minter or
// a badge holder. The zero value is the null address.
type Address = common.Address

// ZeroAddress is the null address. It never owns badges and can never become
// the registry owner.
var ZeroAddress = common.Address{}

// EventID identifies a registered event. Allocated sequentially from 1.
type EventID uint64

// TokenID identifies an issued badge. Allocated sequentially from 1 across
// the whole registry.
type TokenID uint64

func (id EventID) String() string { return strconv.FormatUint(uint64(id), 10) }

func (id TokenID) String() string { return strconv.FormatUint(uint64(id), 10) }

// IsZero reports whether the id was never allocated (ids start at 1).
func (id EventID) IsZero() bool { return id == 0 }

// IsZero reports whether the id was never allocated (ids start at 1).
func (id TokenID) IsZero() bool { return id == 0 }

// ParseAddress constructs an Address from external input. The 0x prefix is
// optional; mixed-case input is accepted without checksum enforcement.
//
// Errors: returns CodeInvalidInput when the value is empty or not a 20-byte
// hex string.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZeroAddress, dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	if !common.IsHexAddress(s) {
		return ZeroAddress, dErrors.New(dErrors.CodeInvalidInput, "invalid address")
	}
	return common.HexToAddress(s), nil
}

// ParseEventID constructs an EventID from a decimal string. Zero is rejected
// because it is never allocated.
func ParseEventID(s string) (EventID, error) {
	v, err := parsePositive(s, "event id")
	return EventID(v), err
}

// ParseTokenID constructs a TokenID from a decimal string. Zero is rejected
// because it is never allocated.
func ParseTokenID(s string) (TokenID, error) {
	v, err := parsePositive(s, "token id")
	return TokenID(v), err
}

func parsePositive(s, what string) (uint64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	if v == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" must be positive")
	}
	return v, nil
}
