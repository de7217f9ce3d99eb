//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	c, err := New(context.Background(), Config{Enabled: true, Addr: addr, Prefix: "test-" + uuid.NewString(), TTL: time.Minute})
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() {
		_ = c.DeletePrefix(context.Background(), "")
		_ = c.Close()
	})
	return c
}

func TestRememberCachesLoadedValue(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"web-design"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(ctx, c, "public:services", load)
		require.NoError(t, err)
		assert.Equal(t, []string{"web-design"}, v)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, c.DeletePrefix(ctx, "public:"))
	_, err := Remember(ctx, c, "public:services", load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
