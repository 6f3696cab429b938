package handler

import (
	"net/http"

	"soulbound/pkg/platform/httputil"
)

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid create event request", err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.writeError(w, r, "invalid create event request", err)
		return
	}
	ev, err := h.badges.CreateEvent(r.Context(), caller(r), in)
	if err != nil {
		h.writeError(w, r, "create event failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ev)
}

func (h *Handler) handleDeactivateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	if err := h.badges.DeactivateEvent(r.Context(), caller(r), eventID); err != nil {
		h.writeError(w, r, "deactivate event failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddMinter(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	var req MinterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid add minter request", err)
		return
	}
	minter, err := parseAddressField("minter", req.Minter)
	if err != nil {
		h.writeError(w, r, "invalid add minter request", err)
		return
	}
	if err := h.badges.AddMinter(r.Context(), caller(r), eventID, minter); err != nil {
		h.writeError(w, r, "add minter failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveMinter(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	minter, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, "invalid minter address", err)
		return
	}
	if err := h.badges.RemoveMinter(r.Context(), caller(r), eventID, minter); err != nil {
		h.writeError(w, r, "remove minter failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, _ *http.Request) {
	events := h.badges.ListEvents()
	httputil.WriteJSON(w, http.StatusOK, EventsResponse{Events: events, Total: len(events)})
}

func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	ev, err := h.badges.Event(eventID)
	if err != nil {
		h.writeError(w, r, "event lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ev)
}

// handleIsMinter answers false for unknown events, matching the registry.
func (h *Handler) handleIsMinter(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	addr, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, "invalid address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FlagResponse{Value: h.badges.IsMinter(eventID, addr)})
}

func (h *Handler) handleHasAttended(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid event id", err)
		return
	}
	addr, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, "invalid address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FlagResponse{Value: h.badges.HasAttended(eventID, addr)})
}
