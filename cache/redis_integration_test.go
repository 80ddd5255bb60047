//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Gin_postgres_redis_book_exchange/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) *redis.Client {
	ctx := context.Background()

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := redisC.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	})

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	opts, err := redis.ParseURL(fmt.Sprintf("redis://%s:%s", host, port.Port()))
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestBookListStore_RealRedis(t *testing.T) {
	s := NewBookListStore(setupRedisContainer(t), time.Minute)
	ctx := context.Background()
	f := models.BookFilter{Location: "Berlin"}
	books := []models.Book{{ID: "b1", Title: "Dune", Location: "Berlin", Status: models.StatusAvailable}}

	_, gen, ok := s.Get(ctx, f)
	require.False(t, ok)
	require.NoError(t, s.Set(ctx, gen, f, books))
	got, _, ok := s.Get(ctx, f)
	require.True(t, ok)
	assert.Equal(t, books, got)

	require.NoError(t, s.Invalidate(ctx))
	_, _, ok = s.Get(ctx, f)
	assert.False(t, ok)
}
