package middleware

import (
	"career_assess_backend/internal/util"
	"career_assess_backend/pkg/logger"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger 用 zap 记录每个请求
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()),
		}
		if id := c.Param("sessionId"); id != "" {
			fields = append(fields, zap.String("sessionId", id))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Log.Error("Request failed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Log.Warn("Request rejected", fields...)
		default:
			logger.Log.Debug("Request handled", fields...)
		}
	}
}

// Recovery panic 时返回统一的 500 响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				logger.Log.Error("Panic recovered", zap.Any("panic", p), zap.String("path", c.Request.URL.Path))
				util.InternalServerError(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequireSessionID 路径中的 sessionId 不能为空
func RequireSessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.Param("sessionId")) == "" {
			util.BadRequest(c, "sessionId is required")
			c.Abort()
			return
		}
		c.Next()
	}
}
