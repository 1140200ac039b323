package cache

import (
	"sync/atomic"
	"time"

	"github.com/guttosm/coinpulse/internal/domain/models"
)

// Store is the process-wide single slot holding the last successful payload.
//
// The slot starts empty, is replaced as a whole on every successful fetch and lives
// as long as the process. Readers never block writers; concurrent writers are
// last-write-wins.
type Store interface {
	Load() (models.CacheEntry, bool)
	Save(payload *models.AggregatedData, storedAt time.Time)
}

type slotStore struct {
	slot atomic.Pointer[models.CacheEntry]
}

// NewStore returns an empty Store.
func NewStore() Store {
	return &slotStore{}
}

// Load returns the current entry, or false when nothing was ever stored.
func (s *slotStore) Load() (models.CacheEntry, bool) {
	e := s.slot.Load()
	if e == nil || e.Payload == nil {
		return models.CacheEntry{}, false
	}
	return *e, true
}

// Save replaces the slot with a new entry. A nil payload is ignored.
func (s *slotStore) Save(payload *models.AggregatedData, storedAt time.Time) {
	if payload == nil {
		return
	}
	s.slot.Store(&models.CacheEntry{Payload: payload, StoredAt: storedAt})
}
