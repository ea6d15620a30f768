package memory

import (
	"context"

	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/restrictions"
)

type medicationRepo struct {
	s *Store
}

func (r *medicationRepo) Create(ctx context.Context, m catalog.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.medications[m.ID] = m
	return nil
}

func (r *medicationRepo) List(ctx context.Context) ([]catalog.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]catalog.Medication, 0, len(r.s.medications))
	for _, m := range r.s.medications {
		out = append(out, m)
	}
	return out, nil
}

func (r *medicationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.medications[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.s.medications, id)
	return nil
}

type restrictionRepo struct {
	s *Store
}

func (r *restrictionRepo) Create(ctx context.Context, it restrictions.Restriction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.restrictions[it.ID] = it
	return nil
}

func (r *restrictionRepo) List(ctx context.Context) ([]restrictions.Restriction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]restrictions.Restriction, 0, len(r.s.restrictions))
	for _, it := range r.s.restrictions {
		out = append(out, it)
	}
	return out, nil
}

func (r *restrictionRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.restrictions[id]; !ok {
		return restrictions.ErrNotFound
	}
	delete(r.s.restrictions, id)
	return nil
}
