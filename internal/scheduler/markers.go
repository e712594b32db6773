package scheduler

import (
	"sync"
	"time"
)

// markerDateLayout es el formato de fecha usado en las claves de disparo.
const markerDateLayout = "2006-01-02"

// TriggerMarkerStore registra pares (reminderID, fecha) para garantizar a lo
// sumo un disparo por recordatorio por dia calendario.
type TriggerMarkerStore interface {
	Mark(reminderID, date string) error
	Seen(reminderID, date string) (bool, error)
	Cleanup(before time.Time) error
}

type memoryMarkerStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryMarkerStore crea un store en memoria para un solo proceso.
func NewMemoryMarkerStore() TriggerMarkerStore {
	return &memoryMarkerStore{items: make(map[string]string)}
}

func (s *memoryMarkerStore) Mark(reminderID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[reminderID+"|"+date] = date
	return nil
}

func (s *memoryMarkerStore) Seen(reminderID, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[reminderID+"|"+date]
	return ok, nil
}

func (s *memoryMarkerStore) Cleanup(before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := before.Format(markerDateLayout)
	for key, date := range s.items {
		if date < cutoff {
			delete(s.items, key)
		}
	}
	return nil
}
