package application

import (
	"sync"
	"testing"
)

func TestSessionLockSerializesSameSession(t *testing.T) {
	locks := newSessionLock()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			locks.Lock("s1")
			counter++
			locks.Unlock("s1")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestSessionLockReclaimsEntries(t *testing.T) {
	locks := newSessionLock()

	locks.Lock("s1")
	locks.Unlock("s1")
	locks.Lock("s2")
	locks.Unlock("s2")

	locks.mu.Lock()
	remaining := len(locks.locks)
	locks.mu.Unlock()

	if remaining != 0 {
		t.Errorf("lock table holds %d entries, want 0 after release", remaining)
	}
}

func TestSessionLockIndependentSessions(t *testing.T) {
	locks := newSessionLock()

	// s1 被持有时 s2 仍可获取
	locks.Lock("s1")
	acquired := make(chan struct{})
	go func() {
		locks.Lock("s2")
		close(acquired)
		locks.Unlock("s2")
	}()
	<-acquired
	locks.Unlock("s1")
}
