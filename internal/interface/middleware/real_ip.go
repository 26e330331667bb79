package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the resolved client address. Rate limit keys, captcha
// remoteip and access logs all read it.
const CtxRealIPKey = "real_ip"

// RealIP resolves the caller address once per request.
// Order: CF-Connecting-IP, left-most X-Forwarded-For, X-Real-IP, then gin's ClientIP.
// Header values that do not parse as an IP are ignored.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := firstIP(
			c.GetHeader("CF-Connecting-IP"),
			leftmost(c.GetHeader("X-Forwarded-For")),
			c.GetHeader("X-Real-IP"),
		)
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

// clientAddr reads the address RealIP stored, or asks gin when RealIP did not run.
func clientAddr(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func leftmost(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return first
}

func firstIP(candidates ...string) string {
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if ip := net.ParseIP(raw); ip != nil {
			return ip.String()
		}
	}
	return ""
}
