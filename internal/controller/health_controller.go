package controller

import (
	"career_assess_backend/internal/util"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// SessionCounter 提供当前会话数
type SessionCounter interface {
	ActiveSessions() int
}

// Pinger 测评记录仓库实现
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController 数据库和 Redis 均为可选，未启用时不检查
type HealthController struct {
	Records  Pinger
	Redis    *redis.Client
	Sessions SessionCounter
}

func NewHealthController(records Pinger, rdb *redis.Client, sessions SessionCounter) *HealthController {
	return &HealthController{Records: records, Redis: rdb, Sessions: sessions}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	healthy := true
	components := gin.H{}

	if c.Records != nil {
		components["database"] = "up"
		if err := c.Records.Ping(checkCtx); err != nil {
			components["database"] = "down"
			healthy = false
		}
	} else {
		components["database"] = "disabled"
	}

	if c.Redis != nil {
		components["redis"] = "up"
		if err := c.Redis.Ping(checkCtx).Err(); err != nil {
			components["redis"] = "down"
			healthy = false
		}
	} else {
		components["redis"] = "disabled"
	}

	data := gin.H{
		"status":         "ok",
		"components":     components,
		"activeSessions": c.Sessions.ActiveSessions(),
	}

	if !healthy {
		data["status"] = "degraded"
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Dependency unavailable",
			Data:    data,
		})
		return
	}

	util.Success(ctx, data)
}
