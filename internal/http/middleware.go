package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/helper"
	"github.com/tazhibayda/devconnect-service/internal/metrics"
	"github.com/tazhibayda/devconnect-service/internal/repo"
	"github.com/tazhibayda/devconnect-service/internal/security"
)

const (
	authUIDKey   = "auth_uid"
	requestIDKey = "X-Request-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDKey, id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.InFlight.Inc()
		c.Next()
		metrics.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// AuthJWT verifies the bearer token and stashes the authenticated uid in the
// context. Handlers behind it can rely on currentUID never being absent.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		tok := ""
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			tok = strings.TrimSpace(raw[len("Bearer "):])
		}
		uid, err := security.ParseAccess(secret, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		oid, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token subject invalid"})
			return
		}
		c.Set(authUIDKey, oid)
		c.Next()
	}
}

func currentUID(c *gin.Context) primitive.ObjectID {
	v, _ := c.Get(authUIDKey)
	oid, _ := v.(primitive.ObjectID)
	return oid
}

func ClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	if host, _, err := net.SplitHostPort(ip); err == nil && host != "" {
		return host
	}
	return ip
}

// RateLimitAuth throttles credential endpoints per client IP with a fixed
// one-minute window in Redis. Fails open: no Redis, no limiting.
func RateLimitAuth(rds *repo.Redis, perMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rds == nil || perMin <= 0 {
			c.Next()
			return
		}
		key := "rl:" + helper.Hash8(c.FullPath()+":"+ClientIP(c))
		n, err := rds.IncrWindow(c.Request.Context(), key, time.Minute)
		if err != nil {
			c.Next()
			return
		}
		if n > int64(perMin) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
