package middleware

import (
	"net/http"
	"sync"
	"time"

	"farmapos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ipWindow counts requests from one client IP within the current window.
type ipWindow struct {
	count   int
	resetAt time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*ipWindow
	limit   int
	window  time.Duration
}

// RateLimiter caps requests per client IP over a fixed window. State is
// in-process only; with multiple replicas each instance enforces its own cap.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{
		clients: make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
	}
	go rl.purgeLoop()

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[ip]
	if !ok || now.After(w.resetAt) {
		w = &ipWindow{resetAt: now.Add(rl.window)}
		rl.clients[ip] = w
	}
	w.count++
	return w.count <= rl.limit
}

// purgeLoop drops windows that already expired so IPs that never come back
// do not accumulate forever.
func (rl *rateLimiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		purged := 0
		for ip, w := range rl.clients {
			if now.After(w.resetAt) {
				delete(rl.clients, ip)
				purged++
			}
		}
		remaining := len(rl.clients)
		rl.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("entries_purged", purged).
				Int("entries_remaining", remaining).
				Msg("rate limiter map purged")
		}
	}
}
