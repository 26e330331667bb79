package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/foodshare/pkg/response"
)

// Scope is what a Limit counts against.
type Scope int

const (
	PerIP Scope = iota
	PerIPAndRoute
	// PerUser must be mounted after Auth; anonymous callers fall back to their IP.
	PerUser
)

// Limit is a fixed-window request budget.
type Limit struct {
	Max    int
	Window time.Duration
	Scope  Scope
	// Bypass skips counting when it returns true.
	Bypass func(*gin.Context) bool
}

func (l Limit) bucket(c *gin.Context) string {
	switch l.Scope {
	case PerIPAndRoute:
		return "rl:path:" + routeOf(c) + ":ip:" + clientAddr(c)
	case PerUser:
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "rl:user:" + uid
		}
		return "rl:user:anon:ip:" + clientAddr(c)
	default:
		return "rl:ip:" + clientAddr(c)
	}
}

// hit increments the window counter, arming its expiry on the first hit,
// and replies {count, remaining ms}.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Limiter enforces Limits against Redis counters. A nil client disables it.
type Limiter struct {
	rdb *redis.Client
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

// Handler applies l. Redis errors let the request through.
func (lm *Limiter) Handler(l Limit) gin.HandlerFunc {
	if lm == nil || lm.rdb == nil || l.Max <= 0 || l.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.Bypass != nil && l.Bypass(c)) {
			c.Next()
			return
		}

		reply, err := hitScript.Run(c.Request.Context(), lm.rdb, []string{l.bucket(c)}, l.Window.Milliseconds()).Int64Slice()
		if err != nil || len(reply) != 2 {
			c.Next()
			return
		}
		count, resetSec := int(reply[0]), 0
		if reply[1] > 0 {
			resetSec = int((reply[1] + 999) / 1000)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(l.Max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count <= l.Max {
			c.Next()
			return
		}
		if resetSec > 0 {
			c.Header("Retry-After", strconv.Itoa(resetSec))
		}
		rateLimited.WithLabelValues(routeOf(c)).Inc()
		response.Error[any](c, http.StatusTooManyRequests, "Too many requests, please try again later", gin.H{"code": "rate_limited"})
		c.Abort()
	}
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}
