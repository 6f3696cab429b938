package handler

import (
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
)

func eventIDParam(r *http.Request) (id.EventID, error) {
	return id.ParseEventID(chi.URLParam(r, "eventID"))
}

func tokenIDParam(r *http.Request) (id.TokenID, error) {
	return id.ParseTokenID(chi.URLParam(r, "tokenID"))
}

func addressParam(r *http.Request, name string) (id.Address, error) {
	return id.ParseAddress(chi.URLParam(r, name))
}

// indexParam parses a zero-based enumeration index.
func indexParam(r *http.Request) (uint64, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, "index"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "index must be a non-negative integer")
	}
	return v, nil
}

// interfaceIDParam parses a 4-byte ERC-165 selector such as 0x80ac58cd.
func interfaceIDParam(r *http.Request) ([4]byte, error) {
	var out [4]byte
	raw := strings.TrimPrefix(chi.URLParam(r, "interfaceID"), "0x")
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) != 4 {
		return out, dErrors.New(dErrors.CodeInvalidInput, "interface id must be 4 hex bytes")
	}
	copy(out[:], b)
	return out, nil
}

func decodeHexData(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "data must be hex encoded")
	}
	return b, nil
}
