// Package admin serves operator routes over the audit pipeline: recent
// events, events spilled to the fallback store, and on-demand outbox relay.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
	audit "soulbound/pkg/platform/audit"
	"soulbound/pkg/platform/circuit"
	"soulbound/pkg/platform/httputil"
	request "soulbound/pkg/platform/middleware/request"
)

const (
	defaultLimit = 50
	maxLimit     = 1000
)

type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
	ListBySubject(ctx context.Context, subject string) ([]audit.Event, error)
	Len() int
}

type OutboxRelay interface {
	Flush(ctx context.Context) (int, error)
}

type Handler struct {
	recent   AuditReader
	fallback AuditReader
	relay    OutboxRelay
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

type Option func(*Handler)

// WithRelay enables POST /audit/relay.
func WithRelay(relay OutboxRelay) Option {
	return func(h *Handler) {
		h.relay = relay
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(h *Handler) {
		h.breaker = b
	}
}

func New(recent, fallback AuditReader, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{recent: recent, fallback: fallback, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the routes relative to r. The caller guards r with the
// admin token middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/recent", h.handleList(h.recent))
	r.Get("/audit/subjects/{address}", h.handleBySubject)
	r.Get("/audit/fallback", h.handleList(h.fallback))
	r.Get("/audit/breaker", h.handleBreaker)
	r.Post("/audit/relay", h.handleRelay)
}

func (h *Handler) handleList(store AuditReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := limitParam(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if store == nil {
			httputil.WriteJSON(w, http.StatusOK, AuditEventsResponse{Events: []audit.Event{}})
			return
		}
		events, err := store.ListRecent(r.Context(), limit)
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
			return
		}
		if events == nil {
			events = []audit.Event{}
		}
		httputil.WriteJSON(w, http.StatusOK, AuditEventsResponse{Events: events, Total: store.Len()})
	}
}

// handleBySubject lists the recent-store events about one address: badges
// it received, minter grants and ownership changes.
func (h *Handler) handleBySubject(w http.ResponseWriter, r *http.Request) {
	addr, err := id.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.recent.ListBySubject(r.Context(), addr.Hex())
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, AuditEventsResponse{Events: events, Total: len(events)})
}

func (h *Handler) handleBreaker(w http.ResponseWriter, _ *http.Request) {
	if h.breaker == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no audit circuit breaker configured"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BreakerResponse{Name: h.breaker.Name(), State: h.breaker.State().String()})
}

func (h *Handler) handleRelay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.relay == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidState, "audit outbox relay is not configured"))
		return
	}
	n, err := h.relay.Flush(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "manual outbox relay failed",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "outbox relay failed"))
		return
	}
	h.logger.InfoContext(ctx, "manual outbox relay",
		"request_id", request.GetRequestID(ctx),
		"published", n,
	)
	httputil.WriteJSON(w, http.StatusOK, RelayResponse{Published: n})
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxLimit {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "limit must be between 1 and 1000")
	}
	return n, nil
}
