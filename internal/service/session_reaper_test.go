package service

import (
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionReaperSweep(t *testing.T) {
	store := repository.NewMemorySessionStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	store.Put(model.NewTestSession("old", model.TestTypeTechnical, model.LevelBeginner, 1, 30, "all", makeQuestions(1), now.Add(-3*time.Hour)))
	store.Put(model.NewTestSession("fresh", model.TestTypeTechnical, model.LevelBeginner, 1, 30, "all", makeQuestions(1), now.Add(-10*time.Minute)))

	reaper := NewSessionReaper(store, time.Hour, time.Minute)
	assert.Equal(t, 1, reaper.Sweep(now))

	_, ok := store.Get("old")
	assert.False(t, ok)
	_, ok = store.Get("fresh")
	assert.True(t, ok)
}

func TestSessionReaperDisabledByZeroTTL(t *testing.T) {
	store := repository.NewMemorySessionStore()
	now := time.Now()
	store.Put(model.NewTestSession("ancient", model.TestTypeTechnical, model.LevelBeginner, 1, 30, "all", makeQuestions(1), now.Add(-72*time.Hour)))

	reaper := NewSessionReaper(store, 0, time.Minute)
	reaper.Start()
	defer reaper.Stop()

	assert.Equal(t, 0, reaper.Sweep(now))
	assert.Equal(t, 1, store.Len())
}

func TestSessionReaperUpdate(t *testing.T) {
	store := repository.NewMemorySessionStore()
	now := time.Now()
	store.Put(model.NewTestSession("s", model.TestTypeTechnical, model.LevelBeginner, 1, 30, "all", makeQuestions(1), now.Add(-2*time.Hour)))

	reaper := NewSessionReaper(store, 0, time.Hour)
	reaper.Update(time.Hour, time.Hour)
	defer reaper.Stop()

	assert.Equal(t, 1, reaper.Sweep(now))
	assert.Equal(t, 0, store.Len())
}
