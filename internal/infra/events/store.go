package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openrds/depositsync/internal/config"
	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/domain/status"
)

type memStore struct {
	mu          sync.RWMutex
	byIndex     map[research.Index][]status.Event
	maxPerIndex uint

	getUTC func() time.Time // for mocking
}

// For testing
func (m *memStore) SetUTCGetter(getter func() time.Time) {
	m.getUTC = getter
}

// NewStore returns an in-memory status.Store. A single coarse lock
// serialises appends and reads; event volume is low enough that anything
// finer grained would be wasted effort.
func NewStore(conf config.Events) status.Store {
	return &memStore{
		byIndex:     make(map[research.Index][]status.Event),
		maxPerIndex: conf.MaxPerIndex,
		getUTC: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (m *memStore) Append(event status.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event.Id = uuid.New().String()
	event.ReceivedAt = m.getUTC()
	sequence := append(m.byIndex[event.ResearchIndex], event)
	if m.maxPerIndex > 0 && uint(len(sequence)) > m.maxPerIndex {
		dropped := uint(len(sequence)) - m.maxPerIndex
		sequence = sequence[dropped:]
		log.Debug().
			Str("research_index", string(event.ResearchIndex)).
			Uint("dropped", dropped).
			Msg("Event cap reached, dropped oldest events")
	}
	m.byIndex[event.ResearchIndex] = sequence
}

func (m *memStore) EventsFor(researchIndex research.Index) []status.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.byIndex[researchIndex]
	// Snapshot so that callers never observe later appends
	snapshot := make([]status.Event, len(stored))
	copy(snapshot, stored)
	return snapshot
}
