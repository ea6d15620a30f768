package memory

import (
	"context"
	"sort"

	"caretrack/internal/domain/history"
)

type historyRepo struct {
	s *Store
}

func (r *historyRepo) Append(ctx context.Context, e history.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.history = append(r.s.history, e)
	return nil
}

func (r *historyRepo) List(ctx context.Context, filter history.ListFilter) ([]history.Entry, error) {
	r.s.mu.RLock()
	out := make([]history.Entry, 0)
	// de atrás hacia adelante: a igual created_at gana la última insertada
	for i := len(r.s.history) - 1; i >= 0; i-- {
		if e := r.s.history[i]; filter.Matches(e) {
			out = append(out, e)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	limit := history.NormalizeLimit(filter.Limit)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
