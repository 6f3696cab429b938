// Package redis appends audit events to a Redis stream.
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	audit "soulbound/pkg/platform/audit"
)

const defaultMaxLen = 100_000

type Store struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

type Option func(*Store)

// WithMaxLen caps the stream length; older entries are trimmed
// approximately.
func WithMaxLen(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxLen = n
		}
	}
}

func New(client redis.Cmdable, stream string, opts ...Option) *Store {
	s := &Store{client: client, stream: stream, maxLen: defaultMaxLen}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := event.Payload()
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			"id":       event.ID.String(),
			"seq":      strconv.FormatUint(event.Seq, 10),
			"action":   event.Action,
			"category": string(event.Category),
			"payload":  payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd audit event: %w", err)
	}
	return nil
}

// Len reports the current stream length.
func (s *Store) Len(ctx context.Context) (int64, error) {
	n, err := s.client.XLen(ctx, s.stream).Result()
	if err != nil {
		return 0, fmt.Errorf("xlen audit stream: %w", err)
	}
	return n, nil
}
