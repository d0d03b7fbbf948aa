package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/seeg/recruiting-platform/internal/config"
)

func startRedis(t *testing.T) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := New(ctx, config.RedisConfig{Host: host, Port: port.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIdempotencyWindow_Integration(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	userID := "user-1"
	requestID := "req-abc"
	ttl := time.Minute

	// A key never reserved reads as a miss.
	_, err := client.GetIdempotentResult(ctx, userID, requestID)
	assert.ErrorIs(t, err, ErrNotFound)

	// First reservation wins, second loses.
	won, err := client.ReserveIdempotencyKey(ctx, userID, requestID, ttl)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = client.ReserveIdempotencyKey(ctx, userID, requestID, ttl)
	require.NoError(t, err)
	assert.False(t, won)

	// A reservation without a stored result still reads as a miss: the
	// retry must not be handed a half-committed "pending" marker.
	_, err = client.GetIdempotentResult(ctx, userID, requestID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, client.StoreIdempotentResult(ctx, userID, requestID, "app-123", ttl))

	got, err := client.GetIdempotentResult(ctx, userID, requestID)
	require.NoError(t, err)
	assert.Equal(t, "app-123", got)

	// Another user's identical request id is a separate window.
	_, err = client.GetIdempotentResult(ctx, "user-2", requestID)
	assert.ErrorIs(t, err, ErrNotFound)
}
