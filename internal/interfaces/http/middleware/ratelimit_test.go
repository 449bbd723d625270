package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("grants up to the limit", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("tenant-a"), "request %d", i+1)
		}
		assert.False(t, limiter.Allow("tenant-a"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		assert.True(t, limiter.Allow("tenant-a"))
		assert.False(t, limiter.Allow("tenant-a"))
		assert.True(t, limiter.Allow("tenant-b"))
	})

	t.Run("window expiry refills the bucket", func(t *testing.T) {
		limiter := NewRateLimiter(1, 30*time.Millisecond)

		assert.True(t, limiter.Allow("tenant-a"))
		assert.False(t, limiter.Allow("tenant-a"))

		time.Sleep(40 * time.Millisecond)
		assert.True(t, limiter.Allow("tenant-a"))
	})

	t.Run("concurrent access stays within limit", func(t *testing.T) {
		limiter := NewRateLimiter(50, time.Minute)

		var wg sync.WaitGroup
		var mu sync.Mutex
		granted := 0

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("tenant-a") {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, granted)
	})
}

func TestRateLimiter_Remaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("tenant-a"))

	limiter.Allow("tenant-a")
	limiter.Allow("tenant-a")
	assert.Equal(t, 3, limiter.Remaining("tenant-a"))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(2, time.Minute))
	router.GET("/records", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/records", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := serve()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Remaining"))

	second := serve()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "1", second.Header().Get("X-RateLimit-Remaining"))

	third := serve()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Contains(t, third.Body.String(), "RATE_LIMITED")
}

func TestRateLimitByOrganization(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		// Stand in for the auth middleware
		if org := c.GetHeader("X-Test-Org"); org != "" {
			c.Set(JWTOrganizationIDKey, org)
		}
		c.Next()
	})
	router.Use(RateLimitByOrganization(1, time.Minute))
	router.GET("/records", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	serve := func(org string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/records", nil)
		if org != "" {
			req.Header.Set("X-Test-Org", org)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Each organization has its own bucket
	assert.Equal(t, http.StatusOK, serve("org-1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve("org-1").Code)
	assert.Equal(t, http.StatusOK, serve("org-2").Code)

	// Unauthenticated requests share the client IP bucket
	assert.Equal(t, http.StatusOK, serve("").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve("").Code)
}
