package server

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haixin886/recharge-hub-system-sub001/internal/events"
	"github.com/haixin886/recharge-hub-system-sub001/internal/observability/logger"
	"go.uber.org/zap"
)

// AdminKeyRequired authenticates back-office requests against the
// admin API key injected through configuration at startup. Outside
// production an empty configured key leaves the API open for local
// development.
func (s *Server) AdminKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := strings.TrimSpace(s.cfg.AdminAPIKey)
		if configured == "" && !s.cfg.IsProduction() {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(configured)) != 1 {
			s.log.Warn("rejected admin key",
				zap.String("key", logger.MaskAPIKey(parts[1])),
				zap.String("path", c.FullPath()),
			)
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if s.events != nil {
			s.events.Publish(events.SessionEvent{
				Type:       events.EventSessionStarted,
				Subject:    "admin",
				OccurredAt: time.Now().UTC(),
			})
		}
		c.Next()
	}
}

// RateLimited throttles per client address.
func (s *Server) RateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil || s.limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		AbortWithError(c, ErrTooManyRequests)
	}
}
