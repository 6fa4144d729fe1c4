package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTracker(t *testing.T, cooldown time.Duration) (*RedisRecentQuestionTracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisRecentQuestionTracker(rdb, cooldown), mr
}

func TestRedisTrackerDropsExpiredEntries(t *testing.T) {
	tracker, mr := newRedisTracker(t, time.Hour)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, tracker.MarkUsed(ctx, "2", []string{"old"}, now.Add(-2*time.Hour)))
	require.NoError(t, tracker.MarkUsed(ctx, "2", []string{"edge"}, now.Add(-time.Hour)))
	require.NoError(t, tracker.MarkUsed(ctx, "2", []string{"fresh-a", "fresh-b"}, now.Add(-10*time.Minute)))

	recent, err := tracker.Recent(ctx, "2", now)
	require.NoError(t, err)

	// 截止时间本身仍在冷却期内
	assert.Equal(t, map[string]time.Time{
		"edge":    now.Add(-time.Hour),
		"fresh-a": now.Add(-10 * time.Minute),
		"fresh-b": now.Add(-10 * time.Minute),
	}, recent)

	members, err := mr.ZMembers("assessment:recent_questions:2")
	require.NoError(t, err)
	assert.NotContains(t, members, "old")
}

func TestRedisTrackerKeysPerQuizTypeWithExpiry(t *testing.T) {
	tracker, mr := newRedisTracker(t, 30*time.Minute)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, tracker.MarkUsed(ctx, "1", []string{"q1"}, now))
	require.NoError(t, tracker.MarkUsed(ctx, "3", nil, now))

	assert.Equal(t, 31*time.Minute, mr.TTL("assessment:recent_questions:1"))
	assert.False(t, mr.Exists("assessment:recent_questions:3"))

	other, err := tracker.Recent(ctx, "2", now)
	require.NoError(t, err)
	assert.Empty(t, other)

	recent, err := tracker.Recent(ctx, "1", now)
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), recent["q1"].Unix())
}

func TestRedisTrackerReportsConnectionErrors(t *testing.T) {
	tracker, mr := newRedisTracker(t, time.Hour)
	mr.Close()

	_, err := tracker.Recent(context.Background(), "2", time.Now())
	assert.Error(t, err)
	assert.Error(t, tracker.MarkUsed(context.Background(), "2", []string{"q"}, time.Now()))
}
