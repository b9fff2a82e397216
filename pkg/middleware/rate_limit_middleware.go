package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"testprep-backend/utilities"
)

// RateLimitMiddleware throttles requests per client. The middleware runs
// before route-level auth, so it resolves the identity from the bearer
// token itself: requests carrying a valid access token are keyed by user
// id, everything else by remote IP.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[key] = l
		}
		return l
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			if claims, err := utilities.ValidateToken(strings.TrimPrefix(auth, "Bearer "), false); err == nil {
				key = "user:" + strconv.FormatUint(uint64(claims.UserID), 10)
			}
		}
		if !limiterFor(key).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
