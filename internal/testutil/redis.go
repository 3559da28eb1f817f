package testutil

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTestRedisAddr returns the Redis address used by integration tests.
// Defaults to port 56379 (local test Redis from docker-compose test profile).
func DefaultTestRedisAddr() string {
	return getEnvOrDefault("TEST_REDIS_ADDR", "localhost:56379")
}

// SetupTestRedis creates a Redis client against the test instance, skipping
// the test when Redis is unreachable. The test DB is flushed before use and
// again when the test finishes.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: DefaultTestRedisAddr(),
		DB:   1, // keep test keys away from any local dev instance
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if requireRedis() {
			t.Fatal("Test Redis not available:", err)
		}
		t.Skip("Test Redis not available:", err)
		return nil
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatal("Failed to flush test Redis DB:", err)
	}

	return client
}

// TeardownTestRedis flushes the test DB and closes the client.
func TeardownTestRedis(t TestingTB, client *redis.Client) {
	t.Helper()
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Logf("test redis flush failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Logf("test redis close failed: %v", err)
	}
}

// requireRedis reports whether tests must fail (not skip) when Redis is absent.
// Set TEST_REDIS_REQUIRED=1 in CI to catch a missing Redis service.
func requireRedis() bool {
	return envBool("TEST_REDIS_REQUIRED")
}
