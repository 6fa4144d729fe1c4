package repository

import (
	"career_assess_backend/internal/model"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(id string) *model.TestSession {
	return model.NewTestSession(id, model.TestTypeCognitive, model.LevelBeginner, 1, 30, "all",
		[]model.Question{{Prompt: "q", CorrectOption: "A"}}, time.Now())
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	store.Put(testSession("a"))
	store.Put(testSession("b"))

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 2, store.Len())

	assert.True(t, store.Delete("b"))
	assert.False(t, store.Delete("b"))

	taken, ok := store.Take("a")
	require.True(t, ok)
	assert.Equal(t, "a", taken.ID)

	_, ok = store.Take("a")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemorySessionStoreTakeIsExclusive(t *testing.T) {
	store := NewMemorySessionStore()
	store.Put(testSession("only"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := store.Take("only"); ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestMemorySessionStoreRangeAllowsDelete(t *testing.T) {
	store := NewMemorySessionStore()
	for _, id := range []string{"a", "b", "c"} {
		store.Put(testSession(id))
	}

	store.Range(func(s *model.TestSession) bool {
		store.Delete(s.ID)
		return true
	})
	assert.Equal(t, 0, store.Len())
}

func TestMemoryRecentQuestionTracker(t *testing.T) {
	tracker := NewMemoryRecentQuestionTracker(time.Hour)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, tracker.MarkUsed(ctx, "1", []string{"q1", "q2"}, now.Add(-2*time.Hour)))
	require.NoError(t, tracker.MarkUsed(ctx, "1", []string{"q3"}, now.Add(-10*time.Minute)))
	require.NoError(t, tracker.MarkUsed(ctx, "2", []string{"q9"}, now))

	recent, err := tracker.Recent(ctx, "1", now)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
	assert.Contains(t, recent, "q3")

	other, err := tracker.Recent(ctx, "3", now)
	require.NoError(t, err)
	assert.Empty(t, other)
}
