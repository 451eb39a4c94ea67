package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// ConfigureClientIP makes gin resolve the client address from forwarding
// headers only when the peer is one of the trusted proxies. With none
// configured the socket address is used as is.
func ConfigureClientIP(r *gin.Engine, trustedProxies []string) error {
	r.ForwardedByClientIP = true
	r.RemoteIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies %v: %w", trustedProxies, err)
	}
	return nil
}

// clientIP is the address requests are limited and logged by.
func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
