package handler

import (
	"net/http"
	"strconv"

	dErrors "soulbound/pkg/domain-errors"
	"soulbound/pkg/platform/httputil"
)

func (h *Handler) handleGetToken(w http.ResponseWriter, r *http.Request) {
	tokenID, err := tokenIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid token id", err)
		return
	}
	token, err := h.badges.Token(tokenID)
	if err != nil {
		h.writeError(w, r, "token lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, token)
}

func (h *Handler) handleGetApproved(w http.ResponseWriter, r *http.Request) {
	tokenID, err := tokenIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid token id", err)
		return
	}
	addr, err := h.badges.GetApproved(tokenID)
	if err != nil {
		h.writeError(w, r, "approval lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AddressResponse{Address: addr})
}

func (h *Handler) handleTokenByIndex(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		h.writeError(w, r, "invalid index", err)
		return
	}
	token, err := h.badges.TokenByIndex(i)
	if err != nil {
		h.writeError(w, r, "token by index failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, token)
}

func (h *Handler) handleTokensOfOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, "invalid owner address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TokensResponse{Owner: owner, Tokens: h.badges.TokensOfOwner(owner)})
}

func (h *Handler) handleTokenOfOwnerByIndex(w http.ResponseWriter, r *http.Request) {
	owner, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, "invalid owner address", err)
		return
	}
	i, err := indexParam(r)
	if err != nil {
		h.writeError(w, r, "invalid index", err)
		return
	}
	token, err := h.badges.TokenOfOwnerByIndex(owner, i)
	if err != nil {
		h.writeError(w, r, "token of owner by index failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, token)
}

func (h *Handler) handleBalanceOf(w http.ResponseWriter, r *http.Request) {
	owner, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, "invalid owner address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Owner: owner, Balance: h.badges.BalanceOf(owner)})
}

func (h *Handler) handleIsApprovedForAll(w http.ResponseWriter, r *http.Request) {
	owner, err := addressParam(r, "address")
	if err != nil {
		h.writeError(w, r, "invalid owner address", err)
		return
	}
	operator, err := addressParam(r, "operator")
	if err != nil {
		h.writeError(w, r, "invalid operator address", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FlagResponse{Value: h.badges.IsApprovedForAll(owner, operator)})
}

// The transfer family parses its input so malformed requests still get a
// 400, then always fails with transfer_disabled.

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	tokenID, err := tokenIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid token id", err)
		return
	}
	var req TransferRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid transfer request", err)
		return
	}
	from, err := parseAddressField("from", req.From)
	if err != nil {
		h.writeError(w, r, "invalid transfer request", err)
		return
	}
	to, err := parseAddressField("to", req.To)
	if err != nil {
		h.writeError(w, r, "invalid transfer request", err)
		return
	}
	if req.Safe {
		data, derr := decodeHexData(req.Data)
		if derr != nil {
			h.writeError(w, r, "invalid transfer request", derr)
			return
		}
		err = h.badges.SafeTransferFrom(r.Context(), caller(r), from, to, tokenID, data)
	} else {
		err = h.badges.TransferFrom(r.Context(), caller(r), from, to, tokenID)
	}
	h.writeNoContent(w, r, "transfer rejected", err)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	tokenID, err := tokenIDParam(r)
	if err != nil {
		h.writeError(w, r, "invalid token id", err)
		return
	}
	var req ApproveRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid approve request", err)
		return
	}
	approved, err := parseAddressField("approved", req.Approved)
	if err != nil {
		h.writeError(w, r, "invalid approve request", err)
		return
	}
	h.writeNoContent(w, r, "approve rejected", h.badges.Approve(r.Context(), caller(r), approved, tokenID))
}

func (h *Handler) handleSetApprovalForAll(w http.ResponseWriter, r *http.Request) {
	var req OperatorRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "invalid operator request", err)
		return
	}
	operator, err := parseAddressField("operator", req.Operator)
	if err != nil {
		h.writeError(w, r, "invalid operator request", err)
		return
	}
	h.writeNoContent(w, r, "set approval for all rejected", h.badges.SetApprovalForAll(r.Context(), caller(r), operator, req.Approved))
}

func parseUint(raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "expected a non-negative integer")
	}
	return v, nil
}
