package handler

import (
	"net/http"

	"soulbound/pkg/platform/httputil"
)

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	if err := h.badges.Pause(r.Context(), caller(r)); err != nil {
		h.writeError(w, r, "pause failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUnpause(w http.ResponseWriter, r *http.Request) {
	if err := h.badges.Unpause(r.Context(), caller(r)); err != nil {
		h.writeError(w, r, "unpause failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req TransferOwnershipRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid transfer ownership request", err)
		return
	}
	// The zero address parses; the registry rejects it with its own error.
	newOwner, err := parseAddressField("new_owner", req.NewOwner)
	if err != nil {
		h.writeError(w, r, "invalid transfer ownership request", err)
		return
	}
	if err := h.badges.TransferOwnership(r.Context(), caller(r), newOwner); err != nil {
		h.writeError(w, r, "transfer ownership failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.badges.Status())
}

func (h *Handler) handleSupportsInterface(w http.ResponseWriter, r *http.Request) {
	interfaceID, err := interfaceIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid interface id", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FlagResponse{Value: h.badges.SupportsInterface(interfaceID)})
}

func (h *Handler) handleJournal(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if raw := r.URL.Query().Get("since"); raw != "" {
		v, err := parseUint(raw)
		if err != nil {
			h.writeError(w, r, "invalid since parameter", err)
			return
		}
		since = v
	}
	httputil.WriteJSON(w, http.StatusOK, toJournalResponse(since, h.badges.Journal(since)))
}
