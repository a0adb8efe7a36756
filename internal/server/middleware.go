package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Paths that are never logged.
var quietPrefixes = []string{"/assets/", "/favicon", "/healthz"}

// hashIP hides client addresses in logs. The salt is per process, so hashes
// are stable for one run and unlinkable across runs.
func hashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Privacy-conscious request logging
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range quietPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		start := time.Now()
		c.Next()

		client := "-"
		// Respect Do Not Track header
		if c.GetHeader("DNT") != "1" {
			client = hashIP(c.ClientIP(), s.salt)
		}

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond),
			"client", client,
		}
		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			s.logger.Warn("request", fields...)
		default:
			s.logger.Debug("request", fields...)
		}
	}
}

// adminAuth accepts the configured token as a bearer token or an admin_token
// cookie.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token, _ = c.Cookie("admin_token")
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			s.logger.Warn("rejected admin request", "client", hashIP(c.ClientIP(), s.salt))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
