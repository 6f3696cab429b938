package testutil

import (
	"net/http"

	id "soulbound/pkg/domain"
	"soulbound/pkg/requestcontext"
)

// WithCaller sets the authenticated caller the way the auth middleware does,
// for handlers mounted without it.
func WithCaller(req *http.Request, caller id.Address) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}
