package registry

import (
	"strconv"
	"strings"

	id "soulbound/pkg/domain"
)

// URIResolver derives token metadata URIs as "<base>/<eventId>/<tokenId>".
// Nothing is stored per token.
type URIResolver struct {
	base string
}

// NewURIResolver trims trailing slashes from base so the separator is never
// doubled.
func NewURIResolver(base string) URIResolver {
	return URIResolver{base: strings.TrimRight(base, "/")}
}

func (u URIResolver) Resolve(eventID id.EventID, tokenID id.TokenID) string {
	var b strings.Builder
	b.Grow(len(u.base) + 42)
	b.WriteString(u.base)
	b.WriteByte('/')
	b.WriteString(strconv.FormatUint(uint64(eventID), 10))
	b.WriteByte('/')
	b.WriteString(strconv.FormatUint(uint64(tokenID), 10))
	return b.String()
}

// TokenURI requires the token to exist in the ledger.
func (r *Registry) TokenURI(tokenID id.TokenID) (string, error) {
	if _, err := r.ledger.OwnerOf(tokenID); err != nil {
		return "", ErrNonexistentToken
	}
	return r.uri.Resolve(r.tokenEvents[tokenID], tokenID), nil
}
