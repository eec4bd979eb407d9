package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeremiapane/shop-dataset/utils"
)

var errTooManyRequests = errors.New("too many requests, try again shortly")

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idle    time.Duration
	clients map[string]*client
	mu      sync.Mutex

	Interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter allows perSecond requests per client with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idle:     10 * time.Minute,
		clients:  make(map[string]*client),
		Interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.RespondError(c, http.StatusTooManyRequests, errTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Start evicts idle clients every Interval until Stop is called.
func (rl *RateLimiter) Start() {
	go func() {
		ticker := time.NewTicker(rl.Interval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				rl.evict(now)
			case <-rl.stop:
				return
			}
		}
	}()
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > rl.idle {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) clientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
