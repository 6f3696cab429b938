// Package service serializes access to the badge registry and turns the
// registry's journal into audit events, logs, traces and metrics.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AuditPublisher

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"soulbound/internal/badge/metrics"
	"soulbound/internal/badge/models"
	"soulbound/internal/badge/registry"
	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
	audit "soulbound/pkg/platform/audit"
)

const tracerName = "soulbound/internal/badge/service"

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is safe for concurrent use. Mutations hold an exclusive lock for
// the whole registry operation, queries share a read lock.
type Service struct {
	mu  sync.RWMutex
	reg *registry.Registry

	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(reg *registry.Registry, opts ...Option) *Service {
	s := &Service{
		reg:    reg,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mutate runs fn under the write lock and publishes the journal entries it
// appended, in order, before releasing the lock. Entries are published even
// when fn fails, since a halted batch keeps its earlier mints.
func (s *Service) mutate(ctx context.Context, op string, caller id.Address, fn func(*registry.Registry) error, attrs ...attribute.KeyValue) error {
	ctx, span := s.tracer.Start(ctx, "badge."+op, trace.WithAttributes(
		append(attrs, attribute.String("caller", caller.Hex()))...,
	))
	defer span.End()

	entries, err := s.commit(ctx, fn)

	span.SetAttributes(attribute.Int("journal.entries", len(entries)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		s.metrics.RecordFailure(op, err)
		s.logger.WarnContext(ctx, "registry operation rejected",
			"operation", op,
			"caller", caller.Hex(),
			"code", dErrors.CodeOf(err),
			"error", err,
		)
	}
	return err
}

// commit holds the write lock for fn and the publication of what it
// journaled. A panicking fn still releases the lock.
func (s *Service) commit(ctx context.Context, fn func(*registry.Registry) error) ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.reg.JournalSeq()
	err := fn(s.reg)
	entries := s.reg.JournalSince(before)
	s.publish(ctx, entries)
	return entries, err
}

// publish detaches from ctx cancellation: the registry change is already
// committed, so a client hanging up must not lose its audit record.
func (s *Service) publish(ctx context.Context, entries []models.JournalEntry) {
	if s.auditPublisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, entry := range entries {
		if err := s.auditPublisher.Emit(ctx, toAuditEvent(ctx, entry)); err != nil {
			s.logger.ErrorContext(ctx, "failed to emit audit event",
				"action", entry.Event.Kind(),
				"seq", entry.Seq,
				"error", err,
			)
		}
	}
}

func (s *Service) read(fn func(*registry.Registry)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.reg)
}
