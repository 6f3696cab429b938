package revocation

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "trl:jti:"

// RedisTRL keeps revoked token ids in Redis so every instance sees the same
// list. Keys expire together with the tokens they block.
type RedisTRL struct {
	client            redis.Cmdable
	isRevokedDuration prometheus.Histogram
}

type RedisTRLOption func(*RedisTRL)

// WithMetrics registers the lookup latency histogram on reg.
func WithMetrics(reg prometheus.Registerer) RedisTRLOption {
	return func(t *RedisTRL) {
		t.isRevokedDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "soulbound_is_token_revoked_duration_ms",
			Help:    "Latency of token revocation checks in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		})
	}
}

func NewRedisTRL(client redis.Cmdable, opts ...RedisTRLOption) *RedisTRL {
	trl := &RedisTRL{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(trl)
		}
	}
	return trl
}

func (t *RedisTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	return t.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

func (t *RedisTRL) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if t.isRevokedDuration != nil {
		start := time.Now()
		defer func() {
			t.isRevokedDuration.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
		}()
	}
	if jti == "" {
		return false, nil
	}
	n, err := t.client.Exists(ctx, revokedTokenKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
