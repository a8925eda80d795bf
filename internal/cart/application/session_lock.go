package application

import "sync"

// sessionLock 按会话标识串行化购物车写操作的键控互斥锁。
// 引用计数保证锁条目在无人持有时回收，会话数量不会使 map 无界增长。
type sessionLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newSessionLock() *sessionLock {
	return &sessionLock{locks: make(map[string]*lockEntry)}
}

// Lock 获取会话锁，同一会话的并发调用串行执行
func (s *sessionLock) Lock(sessionID string) {
	s.mu.Lock()
	entry, ok := s.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		s.locks[sessionID] = entry
	}
	entry.refs++
	s.mu.Unlock()

	entry.mu.Lock()
}

// Unlock 释放会话锁，最后一个持有者离开时回收条目
func (s *sessionLock) Unlock(sessionID string) {
	s.mu.Lock()
	entry := s.locks[sessionID]
	entry.refs--
	if entry.refs == 0 {
		delete(s.locks, sessionID)
	}
	s.mu.Unlock()

	entry.mu.Unlock()
}
