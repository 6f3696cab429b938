// Package relay ships audit outbox rows to Kafka and marks them published.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"soulbound/pkg/platform/audit/store/kafka"
	"soulbound/pkg/platform/audit/store/postgres"
)

// Outbox is the part of the postgres store the relay drives.
type Outbox interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	ListUnpublished(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids ...uuid.UUID) error
}

type Relay struct {
	outbox    Outbox
	producer  kafka.Producer
	topic     string
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func New(outbox Outbox, producer kafka.Producer, topic string, opts ...Option) *Relay {
	r := &Relay{
		outbox:    outbox,
		producer:  producer,
		topic:     topic,
		interval:  time.Second,
		batchSize: 100,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is done. Failed batches are retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil {
				r.logger.ErrorContext(ctx, "audit outbox relay failed", "error", err)
			}
		}
	}
}

// Flush ships one batch and returns how many rows were published. Rows are
// marked only after Kafka acknowledged them, so delivery is at-least-once.
// The batch stays locked in the outbox transaction until it is marked, which
// keeps a second relay replica off the same rows.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	var shipped int
	err := r.outbox.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := r.outbox.ListUnpublished(ctx, r.batchSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		if err := r.producer.ProduceSync(ctx, r.records(entries)...).FirstErr(); err != nil {
			return fmt.Errorf("produce outbox batch: %w", err)
		}

		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		if err := r.outbox.MarkPublished(ctx, ids...); err != nil {
			return err
		}
		shipped = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if shipped > 0 {
		r.logger.DebugContext(ctx, "audit outbox relayed", "count", shipped)
	}
	return shipped, nil
}

func (r *Relay) records(entries []postgres.OutboxEntry) []*kgo.Record {
	records := make([]*kgo.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, &kgo.Record{
			Topic: r.topic,
			Key:   []byte(e.AggregateType + ":" + e.AggregateID),
			Value: e.Payload,
			Headers: []kgo.RecordHeader{
				{Key: "event_type", Value: []byte(e.EventType)},
				{Key: "outbox_id", Value: []byte(e.ID.String())},
			},
		})
	}
	return records
}
