package middleware

import (
	"net/http"
	"sync"
	"time"

	"grandstay/config"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-IP token bucket sized from MAX_REQUESTS_PER_MIN.
// Stale buckets are evicted by a background sweep.
func RateLimiter() gin.HandlerFunc {
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 100
	}
	limit := rate.Limit(float64(perMin) / 60.0)
	burst := perMin / 4
	if burst < 5 {
		burst = 5
	}

	var mu sync.Mutex
	clients := make(map[string]*clientLimiter)

	go func() {
		for range time.Tick(5 * time.Minute) {
			mu.Lock()
			for ip, cl := range clients {
				if time.Since(cl.lastSeen) > 10*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		mu.Unlock()

		if !cl.limiter.Allow() {
			utils.JSONError(c, http.StatusTooManyRequests, "Too Many Requests",
				"rate limit exceeded, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
