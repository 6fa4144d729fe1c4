package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisRecentQuestionTracker 每个题型一个有序集合，score 为使用时间（秒）
type RedisRecentQuestionTracker struct {
	Redis    *redis.Client
	cooldown time.Duration
	prefix   string
}

func NewRedisRecentQuestionTracker(rdb *redis.Client, cooldown time.Duration) *RedisRecentQuestionTracker {
	return &RedisRecentQuestionTracker{
		Redis:    rdb,
		cooldown: cooldown,
		prefix:   "assessment:recent_questions:",
	}
}

func (t *RedisRecentQuestionTracker) key(quizType string) string {
	return t.prefix + quizType
}

func (t *RedisRecentQuestionTracker) Recent(ctx context.Context, quizType string, now time.Time) (map[string]time.Time, error) {
	key := t.key(quizType)
	cutoff := now.Add(-t.cooldown).Unix()

	if err := t.Redis.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%d", cutoff)).Err(); err != nil {
		return nil, err
	}

	entries, err := t.Redis.ZRangeByScoreWithScores(ctx, key, &redis.ZRangeBy{
		Min: strconv.FormatInt(cutoff, 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		id, ok := e.Member.(string)
		if !ok {
			continue
		}
		out[id] = time.Unix(int64(e.Score), 0)
	}
	return out, nil
}

func (t *RedisRecentQuestionTracker) MarkUsed(ctx context.Context, quizType string, questionIDs []string, now time.Time) error {
	if len(questionIDs) == 0 {
		return nil
	}

	members := make([]*redis.Z, 0, len(questionIDs))
	for _, id := range questionIDs {
		members = append(members, &redis.Z{Score: float64(now.Unix()), Member: id})
	}

	key := t.key(quizType)
	pipe := t.Redis.TxPipeline()
	pipe.ZAdd(ctx, key, members...)
	pipe.Expire(ctx, key, t.cooldown+time.Minute)
	_, err := pipe.Exec(ctx)
	return err
}
