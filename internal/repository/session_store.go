package repository

import (
	"career_assess_backend/internal/model"
	"sync"
)

// SessionStore 保存进行中的测评会话，生命周期与进程一致
type SessionStore interface {
	Get(id string) (*model.TestSession, bool)
	Put(session *model.TestSession)
	Delete(id string) bool
	// Take 原子地取出并删除
	Take(id string) (*model.TestSession, bool)
	Len() int
	Range(fn func(session *model.TestSession) bool)
}

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.TestSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*model.TestSession)}
}

func (s *MemorySessionStore) Get(id string) (*model.TestSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *MemorySessionStore) Put(session *model.TestSession) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

func (s *MemorySessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *MemorySessionStore) Take(id string) (*model.TestSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return session, ok
}

func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Range 遍历快照，fn 返回 false 时停止；遍历期间可安全调用 Delete
func (s *MemorySessionStore) Range(fn func(session *model.TestSession) bool) {
	s.mu.RLock()
	snapshot := make([]*model.TestSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		snapshot = append(snapshot, session)
	}
	s.mu.RUnlock()

	for _, session := range snapshot {
		if !fn(session) {
			return
		}
	}
}
