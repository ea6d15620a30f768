package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"caretrack/internal/domain/schedules"
)

type scheduleRepo struct {
	s *Store
}

func (r *scheduleRepo) Create(ctx context.Context, sc schedules.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(sc.ID) == "" {
		return errors.New("schedule id required")
	}
	if _, exists := r.s.schedules[sc.ID]; exists {
		return errors.New("schedule already exists")
	}
	r.s.schedules[sc.ID] = cloneSchedule(sc)
	return nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sc, ok := r.s.schedules[id]
	if !ok {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	return cloneSchedule(sc), nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]schedules.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]schedules.Schedule, 0, len(r.s.schedules))
	for _, sc := range r.s.schedules {
		out = append(out, cloneSchedule(sc))
	}

	// Orden estable por start_at (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out, nil
}

func (r *scheduleRepo) Update(ctx context.Context, sc schedules.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.schedules[sc.ID]; !exists {
		return schedules.ErrNotFound
	}
	r.s.schedules[sc.ID] = cloneSchedule(sc)
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.schedules[id]; !exists {
		return schedules.ErrNotFound
	}
	delete(r.s.schedules, id)
	return nil
}

func (r *scheduleRepo) RecordDose(ctx context.Context, id string, d schedules.Dose) (schedules.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sc, ok := r.s.schedules[id]
	if !ok {
		return schedules.Schedule{}, schedules.ErrNotFound
	}

	taken := d.TakenAt
	sc.LastTakenAt = &taken
	r.s.schedules[id] = sc
	r.s.history = append(r.s.history, d.Entry(sc))

	return cloneSchedule(sc), nil
}
