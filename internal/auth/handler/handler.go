// Package handler serves session endpoints: operator-issued access tokens
// and logout by token revocation.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	jwttoken "soulbound/internal/jwt_token"
	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
	"soulbound/pkg/platform/httputil"
	request "soulbound/pkg/platform/middleware/request"
	"soulbound/pkg/requestcontext"
)

const maxTokenTTL = 24 * time.Hour

type TokenIssuer interface {
	GenerateAccessToken(address id.Address, expiresIn time.Duration) (jwttoken.IssuedToken, error)
}

type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

type Handler struct {
	issuer   TokenIssuer
	revoker  TokenRevoker
	tokenTTL time.Duration
	logger   *slog.Logger
}

func New(issuer TokenIssuer, revoker TokenRevoker, tokenTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{issuer: issuer, revoker: revoker, tokenTTL: tokenTTL, logger: logger}
}

// Register mounts logout behind requireAuth.
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.With(requireAuth).Post("/auth/logout", h.handleLogout)
}

// RegisterOps mounts token issuance. The caller must guard r with the admin
// token middleware.
func (h *Handler) RegisterOps(r chi.Router) {
	r.Post("/tokens", h.handleIssueToken)
}

type IssueTokenRequest struct {
	Address    string `json:"address"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	JTI         string    `json:"jti"`
}

func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req IssueTokenRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	addr, err := id.ParseAddress(req.Address)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, "address must be an address"))
		return
	}
	ttl := h.tokenTTL
	if req.TTLSeconds != 0 {
		ttl = time.Duration(req.TTLSeconds) * time.Second
	}
	if ttl <= 0 || ttl > maxTokenTTL {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "ttl_seconds must be between 1 and 86400"))
		return
	}

	issued, err := h.issuer.GenerateAccessToken(addr, ttl)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign access token",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token"))
		return
	}
	h.logger.InfoContext(ctx, "access token issued",
		"request_id", request.GetRequestID(ctx),
		"address", addr.Hex(),
		"jti", issued.JTI,
	)
	httputil.WriteJSON(w, http.StatusCreated, TokenResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresAt:   issued.ExpiresAt,
		JTI:         issued.JTI,
	})
}

// handleLogout revokes the presented token for the longest lifetime a token
// can have, so it stays blocked until it would have expired anyway.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jti := requestcontext.AccessTokenID(ctx)
	if jti == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "token has no id to revoke"))
		return
	}
	if err := h.revoker.RevokeToken(ctx, jti, maxTokenTTL); err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke token",
			"request_id", request.GetRequestID(ctx),
			"jti", jti,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token"))
		return
	}
	h.logger.InfoContext(ctx, "token revoked",
		"request_id", request.GetRequestID(ctx),
		"caller", requestcontext.Caller(ctx).Hex(),
	)
	w.WriteHeader(http.StatusNoContent)
}
