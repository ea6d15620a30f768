package memory

import (
	"sync"
	"time"

	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/history"
	"caretrack/internal/domain/restrictions"
	"caretrack/internal/domain/schedules"
)

// Store guarda todo en memoria detrás de un único lock, así RecordDose
// actualiza el schedule y el historial de forma atómica.
// Se pierde al reiniciar (modo dev y tests).
type Store struct {
	mu sync.RWMutex

	schedules    map[string]schedules.Schedule
	history      []history.Entry
	medications  map[string]catalog.Medication
	restrictions map[string]restrictions.Restriction
}

func NewStore() *Store {
	return &Store{
		schedules:    make(map[string]schedules.Schedule),
		medications:  make(map[string]catalog.Medication),
		restrictions: make(map[string]restrictions.Restriction),
	}
}

func (s *Store) Schedules() schedules.Repository       { return &scheduleRepo{s} }
func (s *Store) History() history.Repository           { return &historyRepo{s} }
func (s *Store) Medications() catalog.Repository       { return &medicationRepo{s} }
func (s *Store) Restrictions() restrictions.Repository { return &restrictionRepo{s} }

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// cloneSchedule evita que quien recibe el schedule comparta punteros con el store.
func cloneSchedule(s schedules.Schedule) schedules.Schedule {
	s.EndAt = cloneTime(s.EndAt)
	s.LastTakenAt = cloneTime(s.LastTakenAt)
	return s
}
