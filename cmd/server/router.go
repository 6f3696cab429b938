package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"soulbound/internal/admin"
	authhandler "soulbound/internal/auth/handler"
	badgehandler "soulbound/internal/badge/handler"
	"soulbound/internal/platform/metrics"
	"soulbound/internal/platform/middleware"
	"soulbound/pkg/platform/httputil"
	adminmw "soulbound/pkg/platform/middleware/admin"
	authmw "soulbound/pkg/platform/middleware/auth"
	"soulbound/pkg/platform/middleware/metadata"
	"soulbound/pkg/platform/middleware/request"
	"soulbound/pkg/platform/middleware/requesttime"
)

type tokenRevocationList interface {
	authhandler.TokenRevoker
	authmw.TokenRevocationChecker
}

type routerDeps struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer

	badges      *badgehandler.Handler
	auth        *authhandler.Handler
	validator   authmw.JWTValidator
	revocations authmw.TokenRevocationChecker
	audit       *auditPipeline

	adminToken     string
	adminTokenHash string
	health         func(context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(d.logger))
	r.Use(request.Recovery(d.logger))
	r.Use(middleware.Instrument(metrics.New(d.registerer)))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if d.health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.health(ctx); err != nil {
				d.logger.WarnContext(ctx, "health check failed", "error", err)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Error: err.Error()})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	requireAuth := authmw.RequireAuth(d.validator, d.revocations, d.logger)
	d.badges.Register(r, requireAuth)
	d.auth.Register(r, requireAuth)

	r.Route("/ops", func(r chi.Router) {
		if d.adminTokenHash != "" {
			r.Use(adminmw.RequireAdminTokenHash(d.adminTokenHash, d.logger))
		} else {
			r.Use(adminmw.RequireAdminToken(d.adminToken, d.logger))
		}
		d.auth.RegisterOps(r)

		var opts []admin.Option
		if d.audit.breaker != nil {
			opts = append(opts, admin.WithBreaker(d.audit.breaker))
		}
		if d.audit.relay != nil {
			opts = append(opts, admin.WithRelay(d.audit.relay))
		}
		admin.New(d.audit.recent, d.audit.fallback, d.logger, opts...).Register(r)
	})
	return r
}
