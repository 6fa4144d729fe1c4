package database

import (
	"career_assess_backend/internal/config"
	"career_assess_backend/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func RedisAddr(cfg *config.RedisConfig) string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// InitRedis 建立连接并 Ping 一次；只用于题目冷却记录，失败时调用方降级为内存实现
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 20
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         RedisAddr(cfg),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: 2,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", RedisAddr(cfg), err)
	}

	logger.Log.Info("Redis connection established", zap.String("addr", RedisAddr(cfg)), zap.Int("poolSize", poolSize))
	return rdb, nil
}
