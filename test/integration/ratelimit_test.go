package integration

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/versus/api/internal/adapters/ratelimit"
)

func setupRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { client.Close() })

	return client
}

func TestRedisStoreEnforcesLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupRedisClient(t)
	store := ratelimit.NewRedisStore(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(ctx, "submit:session-1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within the limit", i+1)
	}

	allowed, err := store.Allow(ctx, "submit:session-1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Another key counts independently.
	allowed, err = store.Allow(ctx, "submit:session-2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisStoreCounterAlwaysExpires(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupRedisClient(t)
	store := ratelimit.NewRedisStore(client)
	ctx := context.Background()

	_, err := store.Allow(ctx, "submit:session-1", 5, time.Minute)
	require.NoError(t, err)

	// The counter and its expiry are written atomically, so the key can
	// never survive its window.
	ttl, err := client.TTL(ctx, "ratelimit:submit:session-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "counter must carry a TTL from its very first increment")
	assert.LessOrEqual(t, ttl, time.Minute)

	_, err = store.Allow(ctx, "submit:session-1", 5, time.Minute)
	require.NoError(t, err)

	ttl, err = client.TTL(ctx, "ratelimit:submit:session-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "later hits must not clear the expiry")
}
