package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"soulbound/internal/badge/models"
	"soulbound/internal/badge/service"
	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
	"soulbound/pkg/platform/httputil"
	request "soulbound/pkg/platform/middleware/request"
	"soulbound/pkg/requestcontext"
)

// Service is the badge service as seen by HTTP.
type Service interface {
	CreateEvent(ctx context.Context, caller id.Address, in models.EventInput) (models.Event, error)
	DeactivateEvent(ctx context.Context, caller id.Address, eventID id.EventID) error
	AddMinter(ctx context.Context, caller id.Address, eventID id.EventID, minter id.Address) error
	RemoveMinter(ctx context.Context, caller id.Address, eventID id.EventID, minter id.Address) error
	Issue(ctx context.Context, caller id.Address, eventID id.EventID, recipient id.Address) (models.Token, error)
	BatchIssue(ctx context.Context, caller id.Address, eventID id.EventID, recipients []id.Address) (service.BatchResult, error)
	Pause(ctx context.Context, caller id.Address) error
	Unpause(ctx context.Context, caller id.Address) error
	TransferOwnership(ctx context.Context, caller, newOwner id.Address) error
	SafeTransferFrom(ctx context.Context, caller, from, to id.Address, tokenID id.TokenID, data []byte) error
	TransferFrom(ctx context.Context, caller, from, to id.Address, tokenID id.TokenID) error
	Approve(ctx context.Context, caller, approved id.Address, tokenID id.TokenID) error
	SetApprovalForAll(ctx context.Context, caller, operator id.Address, approved bool) error

	Status() models.RegistryStatus
	ListEvents() []models.Event
	Event(eventID id.EventID) (models.Event, error)
	IsMinter(eventID id.EventID, addr id.Address) bool
	HasAttended(eventID id.EventID, addr id.Address) bool
	Token(tokenID id.TokenID) (models.Token, error)
	GetApproved(tokenID id.TokenID) (id.Address, error)
	IsApprovedForAll(owner, operator id.Address) bool
	SupportsInterface(interfaceID [4]byte) bool
	TokenByIndex(i uint64) (models.Token, error)
	TokenOfOwnerByIndex(owner id.Address, i uint64) (models.Token, error)
	TokensOfOwner(owner id.Address) []models.Token
	BalanceOf(owner id.Address) uint64
	Journal(since uint64) []models.JournalEntry
}

// Handler serves the registry API.
type Handler struct {
	logger *slog.Logger
	badges Service
}

func New(badges Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, badges: badges}
}

// Register mounts the public read routes on r and the write routes behind
// requireAuth.
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/registry", h.handleStatus)
	r.Get("/registry/interfaces/{interfaceID}", h.handleSupportsInterface)
	r.Get("/journal", h.handleJournal)

	r.Get("/events", h.handleListEvents)
	r.Get("/events/{eventID}", h.handleGetEvent)
	r.Get("/events/{eventID}/minters/{address}", h.handleIsMinter)
	r.Get("/events/{eventID}/attendees/{address}", h.handleHasAttended)

	r.Get("/tokens/{tokenID}", h.handleGetToken)
	r.Get("/tokens/{tokenID}/approved", h.handleGetApproved)
	r.Get("/tokens/index/{index}", h.handleTokenByIndex)
	r.Get("/owners/{address}/tokens", h.handleTokensOfOwner)
	r.Get("/owners/{address}/tokens/{index}", h.handleTokenOfOwnerByIndex)
	r.Get("/owners/{address}/balance", h.handleBalanceOf)
	r.Get("/owners/{address}/operators/{operator}", h.handleIsApprovedForAll)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/events", h.handleCreateEvent)
		r.Post("/events/{eventID}/deactivate", h.handleDeactivateEvent)
		r.Post("/events/{eventID}/minters", h.handleAddMinter)
		r.Delete("/events/{eventID}/minters/{address}", h.handleRemoveMinter)
		r.Post("/events/{eventID}/badges", h.handleIssue)
		r.Post("/events/{eventID}/badges/batch", h.handleBatchIssue)

		r.Post("/admin/pause", h.handlePause)
		r.Post("/admin/unpause", h.handleUnpause)
		r.Post("/admin/owner", h.handleTransferOwnership)

		r.Post("/tokens/{tokenID}/transfer", h.handleTransfer)
		r.Post("/tokens/{tokenID}/approve", h.handleApprove)
		r.Post("/operators", h.handleSetApprovalForAll)
	})
}

// writeError logs rejected and failed requests, then maps err to a response.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
	} else {
		h.logger.DebugContext(ctx, msg,
			"request_id", request.GetRequestID(ctx),
			"code", dErrors.CodeOf(err),
		)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) writeNoContent(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if err != nil {
		h.writeError(w, r, msg, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func caller(r *http.Request) id.Address {
	return requestcontext.Caller(r.Context())
}
