package repository

import (
	"context"
	"sync"
	"time"
)

// RecentQuestionTracker 记录各题型最近出过的题目，用于出题冷却
type RecentQuestionTracker interface {
	// Recent 返回冷却期内的题目ID及其最近使用时间
	Recent(ctx context.Context, quizType string, now time.Time) (map[string]time.Time, error)
	MarkUsed(ctx context.Context, quizType string, questionIDs []string, now time.Time) error
}

type MemoryRecentQuestionTracker struct {
	mu       sync.Mutex
	cooldown time.Duration
	used     map[string]map[string]time.Time
}

func NewMemoryRecentQuestionTracker(cooldown time.Duration) *MemoryRecentQuestionTracker {
	return &MemoryRecentQuestionTracker{
		cooldown: cooldown,
		used:     make(map[string]map[string]time.Time),
	}
}

func (t *MemoryRecentQuestionTracker) Recent(ctx context.Context, quizType string, now time.Time) (map[string]time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cleanupLocked(quizType, now)

	out := make(map[string]time.Time, len(t.used[quizType]))
	for id, ts := range t.used[quizType] {
		out[id] = ts
	}
	return out, nil
}

func (t *MemoryRecentQuestionTracker) MarkUsed(ctx context.Context, quizType string, questionIDs []string, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	bucket, ok := t.used[quizType]
	if !ok {
		bucket = make(map[string]time.Time)
		t.used[quizType] = bucket
	}
	for _, id := range questionIDs {
		bucket[id] = now
	}
	return nil
}

func (t *MemoryRecentQuestionTracker) cleanupLocked(quizType string, now time.Time) {
	for id, ts := range t.used[quizType] {
		if now.Sub(ts) > t.cooldown {
			delete(t.used[quizType], id)
		}
	}
}
