//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "soulbound/pkg/platform/audit"
	"soulbound/pkg/testutil/containers"
)

func TestStore_ProduceAndConsume(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	producer, err := kgo.NewClient(kgo.SeedBrokers(rp.Broker), kgo.AllowAutoTopicCreation())
	require.NoError(t, err)
	defer producer.Close()

	store := New(producer, "badge-audit")
	require.NoError(t, store.Append(ctx, audit.Event{
		Seq:      1,
		Category: audit.CategoryIssuance,
		Action:   string(audit.EventBadgeMinted),
		TokenID:  1,
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics("badge-audit"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, uint64(1), got.TokenID)
	require.Equal(t, []byte("issuance"), records[0].Key)
}
