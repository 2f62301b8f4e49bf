package controller

import (
	"calibration_quiz/internal/util"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB         *gorm.DB
	Redis      *redis.Client
	BankSizeFn func() int
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, bankSize func() int) *HealthController {
	return &HealthController{DB: db, Redis: rdb, BankSizeFn: bankSize}
}

// @Summary 健康检查
// @Description 检查数据库、Redis 与题库状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}
	if err := sqlDB.PingContext(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	sessions := "memory"
	if c.Redis != nil {
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Redis unavailable")
			return
		}
		sessions = "redis"
	}

	components := gin.H{
		"database": "up",
		"sessions": sessions,
	}
	if c.BankSizeFn != nil {
		components["questions"] = c.BankSizeFn()
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
