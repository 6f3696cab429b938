package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	authhandler "soulbound/internal/auth/handler"
	"soulbound/internal/auth/store/revocation"
	badgehandler "soulbound/internal/badge/handler"
	"soulbound/internal/badge/ledger"
	badgemetrics "soulbound/internal/badge/metrics"
	"soulbound/internal/badge/registry"
	"soulbound/internal/badge/service"
	jwttoken "soulbound/internal/jwt_token"
	"soulbound/internal/platform/config"
	"soulbound/internal/platform/httpserver"
	kafkaplatform "soulbound/internal/platform/kafka"
	"soulbound/internal/platform/logger"
	"soulbound/internal/platform/postgres"
	redisplatform "soulbound/internal/platform/redis"
	"soulbound/internal/platform/tracing"
	audit "soulbound/pkg/platform/audit"
	"soulbound/pkg/platform/audit/publisher"
	"soulbound/pkg/platform/audit/relay"
	kafkastore "soulbound/pkg/platform/audit/store/kafka"
	"soulbound/pkg/platform/audit/store/memory"
	pgstore "soulbound/pkg/platform/audit/store/postgres"
	redisstore "soulbound/pkg/platform/audit/store/redis"
	"soulbound/pkg/platform/circuit"
)

const serviceName = "soulbound"

// infra holds the optional external clients. Each field is nil when its
// setting is empty.
type infra struct {
	redis *redisplatform.Client
	db    *sql.DB
	kafka *kgo.Client
}

func (i infra) close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
	if i.kafka != nil {
		i.kafka.Close()
	}
}

// auditPipeline is the wired audit fan-out plus what the ops routes inspect.
type auditPipeline struct {
	publisher *publisher.Publisher
	recent    *memory.InMemoryStore
	fallback  *memory.InMemoryStore
	breaker   *circuit.Breaker
	relay     *relay.Relay
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Server.Environment, cfg.Server.LogLevel)
	slog.SetDefault(log)

	shutdownTracing, err := tracing.Setup(ctx, serviceName, cfg.Server.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	pipeline, err := buildAudit(ctx, cfg.Audit, deps, promReg, log)
	if err != nil {
		return err
	}

	owner, err := cfg.Registry.OwnerAddress()
	if err != nil {
		return err
	}
	reg, err := registry.New(registry.Config{
		Owner:       owner,
		Name:        cfg.Registry.Name,
		Symbol:      cfg.Registry.Symbol,
		BaseURI:     cfg.Registry.BaseURI,
		BatchPolicy: registry.BatchPolicy(cfg.Registry.BatchPolicy),
	}, ledger.NewInMemory())
	if err != nil {
		return fmt.Errorf("create registry: %w", err)
	}
	badges := service.New(reg,
		service.WithLogger(log),
		service.WithAuditPublisher(pipeline.publisher),
		service.WithMetrics(badgemetrics.New(promReg)),
	)

	var trl tokenRevocationList = revocation.NewInMemoryTRL()
	if deps.redis != nil {
		trl = revocation.NewRedisTRL(deps.redis.Client, revocation.WithMetrics(promReg))
	}
	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)

	router := newRouter(routerDeps{
		logger:         log,
		registerer:     promReg,
		gatherer:       promReg,
		badges:         badgehandler.New(badges, log),
		auth:           authhandler.New(jwtService, trl, cfg.Auth.TokenTTL, log),
		validator:      jwttoken.NewJWTServiceAdapter(jwtService),
		revocations:    trl,
		audit:          pipeline,
		adminToken:     cfg.Server.AdminToken,
		adminTokenHash: cfg.Server.AdminTokenHash,
		health:         deps.health,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting soulbound", "addr", cfg.Server.Addr, "owner", owner.Hex(), "batch_policy", reg.BatchPolicy())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if pipeline.relay != nil {
		g.Go(func() error {
			return pipeline.relay.Run(gctx)
		})
	}

	err = g.Wait()
	pipeline.publisher.Close()
	return err
}

func connect(ctx context.Context, cfg config.Config) (infra, error) {
	var deps infra
	var err error
	if deps.redis, err = redisplatform.New(ctx, cfg.Redis); err != nil {
		return infra{}, err
	}
	if deps.db, err = postgres.Open(ctx, cfg.Audit.PostgresDSN); err != nil {
		deps.close()
		return infra{}, err
	}
	if deps.kafka, err = kafkaplatform.New(ctx, cfg.Audit.KafkaBrokers); err != nil {
		deps.close()
		return infra{}, err
	}
	if deps.kafka != nil {
		if err := kafkaplatform.EnsureTopic(ctx, deps.kafka, cfg.Audit.KafkaTopic, 1); err != nil {
			deps.close()
			return infra{}, err
		}
	}
	return deps, nil
}

// health pings every configured dependency.
func (i infra) health(ctx context.Context) error {
	var errs []error
	if i.redis != nil {
		if err := i.redis.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if i.db != nil {
		if err := i.db.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if i.kafka != nil {
		if err := i.kafka.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("kafka: %w", err))
		}
	}
	return errors.Join(errs...)
}

// buildAudit wires the sinks behind one publisher. With both Postgres and
// Kafka configured, Kafka is fed only by the outbox relay.
func buildAudit(ctx context.Context, cfg config.Audit, deps infra, reg prometheus.Registerer, log *slog.Logger) (*auditPipeline, error) {
	p := &auditPipeline{
		recent:   memory.NewInMemoryStore(),
		fallback: memory.NewInMemoryStore(),
		breaker:  circuit.New("audit", circuit.WithFailureThreshold(cfg.BreakerThreshold)),
	}
	sinks := []audit.Store{p.recent}

	if deps.db != nil {
		outbox := pgstore.New(deps.db)
		if err := outbox.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate audit outbox: %w", err)
		}
		sinks = append(sinks, outbox)
		if deps.kafka != nil {
			p.relay = relay.New(outbox, deps.kafka, cfg.KafkaTopic,
				relay.WithInterval(cfg.RelayInterval),
				relay.WithLogger(log),
			)
		}
	} else if deps.kafka != nil {
		sinks = append(sinks, kafkastore.New(deps.kafka, cfg.KafkaTopic))
	}
	if deps.redis != nil {
		sinks = append(sinks, redisstore.New(deps.redis.Client, cfg.RedisStream, redisstore.WithMaxLen(cfg.RedisMaxLen)))
	}

	fanout := audit.NewFanout(sinks...)
	log.Info("audit pipeline ready", "sinks", fanout.Len(), "async_buffer", cfg.AsyncBuffer, "relay", p.relay != nil)

	opts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
		publisher.WithFallback(p.fallback, p.breaker),
	}
	if cfg.AsyncBuffer > 0 {
		opts = append(opts, publisher.WithAsyncBuffer(cfg.AsyncBuffer))
	}
	p.publisher = publisher.NewPublisher(fanout, opts...)
	return p, nil
}
