// Package scheduler contém os jobs agendados sobre a base de leads
package scheduler

import (
	"sync"
	"time"
)

// syncState impede execuções simultâneas do mesmo job
type syncState struct {
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// begin retorna false quando o job já está em execução
func (s *syncState) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *syncState) end() {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
}

func (s *syncState) running() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.syncRunning
}

func (s *syncState) snapshot() (running bool, startedAt, completedAt time.Time) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.syncRunning, s.lastSyncStartedAt, s.lastSyncCompletedAt
}
