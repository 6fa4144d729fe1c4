package service

import (
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/repository"
	"career_assess_backend/pkg/logger"
	"career_assess_backend/pkg/monitoring"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// SessionReaper 定期清理超过 TTL 的会话；TTL 为 0 时不启动
type SessionReaper struct {
	Store repository.SessionStore
	Now   func() time.Time
	ttl   atomic.Int64

	mu       sync.Mutex
	interval time.Duration
	sched    *gocron.Scheduler
}

func NewSessionReaper(store repository.SessionStore, ttl, interval time.Duration) *SessionReaper {
	r := &SessionReaper{
		Store:    store,
		Now:      time.Now,
		interval: interval,
	}
	r.ttl.Store(int64(ttl))
	return r
}

// Sweep 删除创建时间早于 now-ttl 的会话，返回删除数量
func (r *SessionReaper) Sweep(now time.Time) int {
	ttl := time.Duration(r.ttl.Load())
	if ttl <= 0 {
		return 0
	}

	var expired []string
	r.Store.Range(func(session *model.TestSession) bool {
		if now.Sub(session.CreatedAt) > ttl {
			expired = append(expired, session.ID)
		}
		return true
	})

	removed := 0
	for _, id := range expired {
		if r.Store.Delete(id) {
			removed++
		}
	}

	if removed > 0 {
		monitoring.SessionsExpired.Add(float64(removed))
		monitoring.SessionsActive.Set(float64(r.Store.Len()))
		logger.Log.Info("Expired test sessions removed", zap.Int("count", removed), zap.Duration("ttl", ttl))
	}
	return removed
}

func (r *SessionReaper) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	ttl := time.Duration(r.ttl.Load())
	if ttl <= 0 || r.interval <= 0 || r.sched != nil {
		return
	}

	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(r.interval).WaitForSchedule().Do(func() { r.Sweep(r.Now()) }); err != nil {
		logger.Log.Error("Failed to schedule session sweep", zap.Error(err))
		return
	}
	s.StartAsync()
	r.sched = s
	logger.Log.Info("Session reaper started", zap.Duration("ttl", ttl), zap.Duration("interval", r.interval))
}

func (r *SessionReaper) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sched != nil {
		r.sched.Stop()
		r.sched = nil
	}
}

// Update 配置热更新时调用，必要时启停调度
func (r *SessionReaper) Update(ttl, interval time.Duration) {
	r.Stop()
	r.ttl.Store(int64(ttl))
	r.mu.Lock()
	r.interval = interval
	r.mu.Unlock()
	r.Start()
}
