package history

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// List devuelve las entradas por CreatedAt desc (más reciente primero).
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	Kinds      []Kind
	ScheduleID string
	Limit      int
}

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// NormalizeLimit aplica el default y el tope que comparten todos los adapters.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Matches aplica el filtro en memoria (adapters sin query nativa).
func (f ListFilter) Matches(e Entry) bool {
	if f.ScheduleID != "" && e.ScheduleID != f.ScheduleID {
		return false
	}
	if len(f.Kinds) == 0 {
		return true
	}
	for _, k := range f.Kinds {
		if e.Kind == k {
			return true
		}
	}
	return false
}
