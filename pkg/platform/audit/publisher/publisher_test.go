package publisher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "soulbound/pkg/platform/audit"
	"soulbound/pkg/platform/audit/store/memory"
	"soulbound/pkg/platform/circuit"
)

func minted(seq uint64) audit.Event {
	return audit.Event{
		Seq:     seq,
		Action:  string(audit.EventBadgeMinted),
		Subject: "0x00000000000000000000000000000000000000a1",
		EventID: 1,
		TokenID: seq,
	}
}

// failingStore rejects appends while failing is set.
type failingStore struct {
	failing atomic.Bool
	inner   *memory.InMemoryStore
}

func (f *failingStore) Append(ctx context.Context, e audit.Event) error {
	if f.failing.Load() {
		return errors.New("sink unavailable")
	}
	return f.inner.Append(ctx, e)
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), minted(1))
	require.NoError(t, err)

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventBadgeMinted), events[0].Action)
	assert.Equal(t, audit.CategoryIssuance, events[0].Category)
	assert.NotEqual(t, [16]byte{}, [16]byte(events[0].ID))
}

func TestPublisher_SyncModeReturnsStoreError(t *testing.T) {
	store := &failingStore{inner: memory.NewInMemoryStore()}
	store.failing.Store(true)
	pub := NewPublisher(store)

	err := pub.Emit(context.Background(), minted(1))
	assert.ErrorContains(t, err, "sink unavailable")
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for i := range 10 {
		require.NoError(t, pub.Emit(context.Background(), minted(uint64(i+1))))
	}

	pub.Close()

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 10, "all events should be drained on close")
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Seq, "single worker keeps emission order")
	}
}

func TestPublisher_AsyncQueuesWithCancelledContext(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1024))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := range 200 {
		require.NoError(t, pub.Emit(ctx, minted(uint64(i+1))), "room in the buffer wins over a done context")
	}
	pub.Close()

	assert.Equal(t, 200, store.Len())
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()

	assert.ErrorIs(t, pub.Emit(context.Background(), minted(1)), ErrClosed)
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	block := make(chan struct{})
	store := audit.StoreFunc(func(ctx context.Context, _ audit.Event) error {
		<-block
		return nil
	})
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	pub := NewPublisher(store, WithAsyncBuffer(1), WithMetrics(metrics))

	var wg sync.WaitGroup
	var full atomic.Int32
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if errors.Is(pub.Emit(context.Background(), minted(uint64(i+1))), ErrBufferFull) {
				full.Add(1)
			}
		}()
	}
	wg.Wait()
	close(block)
	pub.Close()

	// The worker holds at most one event and the buffer one more.
	assert.GreaterOrEqual(t, full.Load(), int32(8))
	assert.Equal(t, float64(full.Load()), testutil.ToFloat64(metrics.Dropped))
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	fixed := time.Date(2025, 2, 23, 12, 0, 0, 0, time.UTC)
	pub := NewPublisher(store, WithClock(func() time.Time { return fixed }))

	require.NoError(t, pub.Emit(context.Background(), minted(1)))

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	event := minted(1)
	event.Timestamp = customTime
	require.NoError(t, pub.Emit(context.Background(), event))

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	store := audit.StoreFunc(func(ctx context.Context, _ audit.Event) error {
		<-block
		return nil
	})
	pub := NewPublisher(store, WithAsyncBuffer(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Once the buffer is saturated a cancelled context or a full buffer is
	// reported; Emit never blocks.
	var lastErr error
	for i := range 5 {
		lastErr = pub.Emit(ctx, minted(uint64(i+1)))
	}
	require.Error(t, lastErr)
	assert.True(t, errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, ErrBufferFull), "got: %v", lastErr)
}

func TestPublisher_FallbackWhileBreakerOpen(t *testing.T) {
	primary := &failingStore{inner: memory.NewInMemoryStore()}
	fallback := memory.NewInMemoryStore()
	breaker := circuit.New("audit", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	pub := NewPublisher(primary, WithFallback(fallback, breaker), WithMetrics(metrics))
	ctx := context.Background()

	primary.failing.Store(true)

	// First failure is below the threshold and is surfaced.
	assert.Error(t, pub.Emit(ctx, minted(1)))
	assert.Equal(t, 0, fallback.Len())

	// Second failure opens the breaker and spills to the fallback.
	assert.NoError(t, pub.Emit(ctx, minted(2)))
	assert.True(t, breaker.IsOpen())
	assert.Equal(t, 1, fallback.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.BreakerState))

	primary.failing.Store(false)
	assert.NoError(t, pub.Emit(ctx, minted(3)))
	assert.False(t, breaker.IsOpen())
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.BreakerState))
	assert.Equal(t, 1, primary.inner.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FallbackWrites))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.PersistFailures))
}

func TestPublisher_FanoutToMultipleStores(t *testing.T) {
	a := memory.NewInMemoryStore()
	b := memory.NewInMemoryStore()
	pub := NewPublisher(audit.NewFanout(a, nil, b))

	require.NoError(t, pub.Emit(context.Background(), minted(1)))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}
