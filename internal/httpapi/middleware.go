package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/logger"
)

const (
	headerRequestID = "X-Request-Id"
	keyUserID       = "user_id"
	keyAdmin        = "is_admin"
)

// requestID tags the request context so every log line carries the id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (h *Handler) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				h.logger.Error(c.Request.Context(), "Panic recovered on %s %s: %v\n%s",
					c.Request.Method, c.Request.URL.Path, p, debug.Stack())
				h.respondError(c, apperror.Internal(fmt.Errorf("panic: %v", p)))
			}
		}()
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			h.logger.Error(ctx, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
		case status >= 400:
			h.logger.Warn(ctx, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
		default:
			h.logger.Debug(ctx, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, latency)
		}
	}
}

func bodySizeLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// authenticate accepts a Bearer header or the session cookie; EventSource
// requests can only send the cookie.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				h.respondError(c, apperror.Unauthorized("invalid authorization header format"))
				return
			}
			token = parts[1]
		} else if cookie, err := c.Cookie(h.cfg.Auth.CookieName); err == nil {
			token = cookie
		}
		if token == "" {
			h.respondError(c, apperror.Unauthorized("please log in to continue"))
			return
		}

		claims, err := h.Auth.ParseToken(token)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.Set(keyUserID, claims.UserID)
		c.Set(keyAdmin, claims.Admin)
		c.Next()
	}
}

func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(keyAdmin) {
			h.respondError(c, apperror.Forbidden("admin access required"))
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) uint {
	return c.GetUint(keyUserID)
}
