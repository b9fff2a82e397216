package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testprep-backend/internal/model"
	"testprep-backend/utilities"
)

func newLimitedEngine(burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Near-zero refill rate so buckets don't replenish mid-test.
	r.Use(RateLimitMiddleware(0.0001, burst))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func pingAs(r *gin.Engine, ip, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":4321"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_UsersBehindSameIPGetSeparateBuckets(t *testing.T) {
	r := newLimitedEngine(1)

	tokenA, _, err := utilities.GenerateTokens(&model.User{ID: 1, Email: "a@example.com"})
	require.NoError(t, err)
	tokenB, _, err := utilities.GenerateTokens(&model.User{ID: 2, Email: "b@example.com"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, pingAs(r, "10.0.0.9", tokenA))
	assert.Equal(t, http.StatusOK, pingAs(r, "10.0.0.9", tokenB))
	// Each user still exhausts their own bucket.
	assert.Equal(t, http.StatusTooManyRequests, pingAs(r, "10.0.0.9", tokenA))
	assert.Equal(t, http.StatusTooManyRequests, pingAs(r, "10.0.0.9", tokenB))
}

func TestRateLimit_AnonymousRequestsShareIPBucket(t *testing.T) {
	r := newLimitedEngine(1)

	assert.Equal(t, http.StatusOK, pingAs(r, "10.0.0.9", ""))
	assert.Equal(t, http.StatusTooManyRequests, pingAs(r, "10.0.0.9", ""))
	assert.Equal(t, http.StatusOK, pingAs(r, "10.0.0.10", ""))
}

func TestRateLimit_InvalidTokenFallsBackToIP(t *testing.T) {
	r := newLimitedEngine(1)

	assert.Equal(t, http.StatusOK, pingAs(r, "10.0.0.9", "not-a-valid-token"))
	assert.Equal(t, http.StatusTooManyRequests, pingAs(r, "10.0.0.9", "another-bad-token"))
}
