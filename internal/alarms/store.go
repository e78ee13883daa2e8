package alarms

import (
	"sync"
	"time"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// Store mirrors the backend's alarm collection. It is only ever replaced
// wholesale; the last successful fetch wins.
type Store struct {
	mu       sync.RWMutex
	alarms   []models.Alarm
	loadedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Replace(list []models.Alarm) {
	next := make([]models.Alarm, len(list))
	for i, a := range list {
		next[i] = clone(a)
	}

	s.mu.Lock()
	s.alarms = next
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// Snapshot returns a copy of the alarms in server order.
func (s *Store) Snapshot() []models.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alarm, len(s.alarms))
	for i, a := range s.alarms {
		out[i] = clone(a)
	}
	return out
}

func (s *Store) Find(id int) (models.Alarm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.alarms {
		if a.ID == id {
			return clone(a), true
		}
	}
	return models.Alarm{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alarms)
}

// Loaded reports whether at least one fetch has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loadedAt.IsZero()
}

func clone(a models.Alarm) models.Alarm {
	if a.Days != nil {
		a.Days = append([]int(nil), a.Days...)
	}
	return a
}
