// Package publisher delivers audit events to a store, either inline or
// through a bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "soulbound/pkg/platform/audit"
	"soulbound/pkg/platform/audit/worker"
	"soulbound/pkg/platform/circuit"
)

var (
	ErrBufferFull = errors.New("audit buffer full")
	ErrClosed     = errors.New("audit publisher closed")
)

type Publisher struct {
	store    audit.Store
	fallback audit.Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *Metrics
	now      func() time.Time

	bufferSize int
	mu         sync.RWMutex
	closed     bool
	inbox      chan audit.Event
	done       chan struct{}
}

type Option func(*Publisher)

// WithAsyncBuffer switches Emit to non-blocking delivery through a buffer of
// size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.bufferSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithFallback sets the store that receives events the primary store
// rejected while the breaker is open.
func WithFallback(store audit.Store, breaker *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.fallback = store
		p.breaker = breaker
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(audit.StoreFunc(p.persist), p.inbox, nil)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit fills in ID and Timestamp when unset, then delivers the event. In sync
// mode the store error is returned. In async mode an event that fits in the
// buffer is always queued, even with ctx done; Emit fails only when the
// buffer is full or the publisher is closed.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		return p.persist(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- event:
		return nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.metrics.incDropped()
	p.logger.WarnContext(ctx, "audit buffer full, dropping event",
		"action", event.Action,
		"seq", event.Seq,
	)
	return ErrBufferFull
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	err := p.store.Append(ctx, event)
	if err == nil {
		p.metrics.incPublished()
		if p.breaker != nil {
			if _, change := p.breaker.RecordSuccess(); change.Closed {
				p.metrics.setBreakerState(false)
				p.logger.InfoContext(ctx, "audit sink recovered", "breaker", p.breaker.Name())
			}
		}
		return nil
	}

	p.metrics.incPersistFailures()
	p.logger.ErrorContext(ctx, "failed to persist audit event",
		"action", event.Action,
		"seq", event.Seq,
		"error", err,
	)
	if p.breaker == nil {
		return err
	}
	useFallback, change := p.breaker.RecordFailure()
	if change.Opened {
		p.metrics.setBreakerState(true)
		p.logger.WarnContext(ctx, "audit sink unhealthy, using fallback store", "breaker", p.breaker.Name())
	}
	if !useFallback || p.fallback == nil {
		return err
	}
	if ferr := p.fallback.Append(ctx, event); ferr != nil {
		return errors.Join(err, ferr)
	}
	p.metrics.incFallbackWrites()
	return nil
}

// Close stops accepting events and waits until the buffer is drained. It is
// safe to call more than once.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.done != nil {
		<-p.done
	}
}
