package chart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memoryStore is the process-local store used in development mode and
// tests. A single RWMutex guards entries and revisions together, so an
// Update lands the entry mutation and its revision as one atomic step and
// readers never observe a half-applied write.
type memoryStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]*Entry
	byPatient map[uuid.UUID][]uuid.UUID
	revisions map[uuid.UUID][]*Revision
}

func NewMemoryStore() Store {
	return &memoryStore{
		entries:   make(map[uuid.UUID]*Entry),
		byPatient: make(map[uuid.UUID][]uuid.UUID),
		revisions: make(map[uuid.UUID][]*Revision),
	}
}

func (s *memoryStore) Create(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e.Clone()
	s.byPatient[e.PatientID] = append(s.byPatient[e.PatientID], e.ID)
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return e.Clone(), nil
}

func (s *memoryStore) Update(_ context.Context, e *Entry, expectedVersion int, rev *Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entries[e.ID]
	if !ok {
		return ErrEntryNotFound
	}
	if cur.IsDeleted {
		return ErrEntryDeleted
	}
	if cur.Version != expectedVersion {
		return ErrVersionConflict
	}
	e.Version = expectedVersion + 1
	s.entries[e.ID] = e.Clone()
	s.revisions[rev.EntryID] = append(s.revisions[rev.EntryID], cloneRevision(rev))
	return nil
}

func (s *memoryStore) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byPatient[patientID]
	items := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.entries[id].Clone())
	}
	return items, nil
}

func (s *memoryStore) ListByEntry(_ context.Context, entryID uuid.UUID) ([]*Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	revs := s.revisions[entryID]
	out := make([]*Revision, 0, len(revs))
	for _, rev := range revs {
		out = append(out, cloneRevision(rev))
	}
	return out, nil
}

func cloneRevision(rev *Revision) *Revision {
	cp := *rev
	cp.TherapyMethods = append([]string(nil), rev.TherapyMethods...)
	if rev.NextAppointment != nil {
		t := *rev.NextAppointment
		cp.NextAppointment = &t
	}
	return &cp
}
