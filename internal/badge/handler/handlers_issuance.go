package handler

import (
	"net/http"

	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
	"soulbound/pkg/platform/httputil"
	request "soulbound/pkg/platform/middleware/request"
)

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	var req IssueRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid issue request", err)
		return
	}
	recipient, err := parseAddressField("recipient", req.Recipient)
	if err != nil {
		h.writeError(w, r, "invalid issue request", err)
		return
	}
	token, err := h.badges.Issue(r.Context(), caller(r), eventID, recipient)
	if err != nil {
		h.writeError(w, r, "issue failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, token)
}

// handleBatchIssue answers 200 with the minted ids. A halted batch answers
// with the error status and still reports what was minted before the halt.
func (h *Handler) handleBatchIssue(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	var req BatchIssueRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid batch request", err)
		return
	}
	recipients, err := req.Addresses()
	if err != nil {
		h.writeError(w, r, "invalid batch request", err)
		return
	}
	res, err := h.badges.BatchIssue(r.Context(), caller(r), eventID, recipients)
	if err != nil {
		// A halted batch always reports what it minted, even nothing.
		if dErrors.HasCode(err, dErrors.CodeMintFailed) {
			minted := res.Minted
			if minted == nil {
				minted = []id.TokenID{}
			}
			h.logger.DebugContext(r.Context(), "batch issue halted",
				"request_id", request.GetRequestID(r.Context()),
				"minted", len(minted),
			)
			httputil.WriteJSON(w, httputil.StatusFor(dErrors.CodeMintFailed), map[string]any{
				"error":             string(dErrors.CodeMintFailed),
				"error_description": "batch halted after a rejected mint",
				"minted":            minted,
			})
			return
		}
		h.writeError(w, r, "batch issue failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
