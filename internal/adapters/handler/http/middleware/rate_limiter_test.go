package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-heatmap/internal/config"
)

func setupTestRedis(t *testing.T) *redis.Client {
	_ = godotenv.Load("../../../../../.env")

	cfg, err := env.ParseAsWithOptions[config.RedisConfig](env.Options{Prefix: "REDIS_"})
	require.NoError(t, err)
	cfg.DB = 1

	rdb := redis.NewClient(cfg.Options())
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}

	rdb.FlushDB(context.Background())
	return rdb
}

// limitedRouter puts the limiter behind a stand-in for AuthMiddleware that trusts X-User-ID.
func limitedRouter(rdb *redis.Client, limit int, window time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-User-ID"); id != "" {
			c.Set(ContextUserIDKey, id)
		}
		c.Next()
	})
	router.Use(RateLimiterMiddleware(rdb, limit, window))
	router.GET("/entities", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func hit(router *gin.Engine, ip, user string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/entities", nil)
	req.Header.Set("X-Forwarded-For", ip)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := setupTestRedis(t)
	defer rdb.Close()

	ctx := context.Background()

	t.Run("Per-user budget counts down then blocks", func(t *testing.T) {
		rdb.FlushDB(ctx)
		router := limitedRouter(rdb, 3, time.Minute)

		for i := 1; i <= 3; i++ {
			w := hit(router, "10.0.0.1", "alice")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(3-i), w.Header().Get("X-RateLimit-Remaining"))
		}

		w := hit(router, "10.0.0.1", "alice")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), `"retry_in_s"`)

		count, err := rdb.Get(ctx, "rate_limit:user:alice").Int()
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		ttl, err := rdb.TTL(ctx, "rate_limit:user:alice").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("Users behind one IP have separate buckets", func(t *testing.T) {
		rdb.FlushDB(ctx)
		router := limitedRouter(rdb, 1, time.Minute)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2", "alice").Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2", "bob").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.2", "alice").Code)

		n, err := rdb.Exists(ctx, "rate_limit:user:alice", "rate_limit:user:bob").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = rdb.Exists(ctx, "rate_limit:ip:10.0.0.2").Result()
		require.NoError(t, err)
		assert.Zero(t, n, "authenticated requests never touch the IP bucket")
	})

	t.Run("One user is limited across IPs", func(t *testing.T) {
		rdb.FlushDB(ctx)
		router := limitedRouter(rdb, 2, time.Minute)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.3", "carol").Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.4", "carol").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.5", "carol").Code)
	})

	t.Run("Anonymous requests fall back to the IP bucket", func(t *testing.T) {
		rdb.FlushDB(ctx)
		router := limitedRouter(rdb, 1, time.Minute)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.6", "").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.6", "").Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.6", "dave").Code)

		n, err := rdb.Exists(ctx, "rate_limit:ip:10.0.0.6").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Window expiry resets the user bucket", func(t *testing.T) {
		rdb.FlushDB(ctx)
		router := limitedRouter(rdb, 1, time.Second)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.7", "erin").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.7", "erin").Code)

		time.Sleep(1100 * time.Millisecond)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.7", "erin").Code)
	})
}

func TestRateLimiterMiddleware_FailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	badRdb := redis.NewClient(&redis.Options{Addr: "localhost:9999"})
	defer badRdb.Close()

	w := hit(limitedRouter(badRdb, 1, time.Minute), "10.0.0.8", "frank")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}
