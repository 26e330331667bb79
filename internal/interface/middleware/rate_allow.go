package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// FromPrivateNetwork reports loopback and private-range callers, such as an
// in-cluster Prometheus scraper. Use it as a Limit.Bypass.
func FromPrivateNetwork(c *gin.Context) bool {
	parsed := net.ParseIP(clientAddr(c))
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate()
}
