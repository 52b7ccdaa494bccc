package patient

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu       sync.RWMutex
	patients map[uuid.UUID]*Patient
}

func NewMemoryRepo() Repository {
	return &memoryRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (r *memoryRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*Patient, 0, len(r.patients))
	for _, p := range r.patients {
		cp := *p
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].NameKana < items[j].NameKana })
	return items, nil
}
