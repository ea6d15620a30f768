package schedules

import (
	"time"

	"caretrack/internal/domain/history"
)

// Schedule es un plan de dosis recurrente.
// El store es el dueño; el motor de recordatorios solo trabaja con copias.
type Schedule struct {
	ID string

	MedicationName string
	Dosage         string

	// Frequency > 0 (se valida al crear/editar, no en NextDue).
	Frequency time.Duration

	StartAt time.Time
	EndAt   *time.Time // sin dosis estrictamente después de este instante

	LastTakenAt *time.Time

	Notes string
}

// Dose es el registro de una toma contra un schedule.
type Dose struct {
	EntryID string // id del history entry, generado por el service
	TakenAt time.Time
	Author  string
	Note    string
}

// Entry arma el history entry que acompaña a la toma.
// Los adapters lo persisten en la misma operación que LastTakenAt.
func (d Dose) Entry(s Schedule) history.Entry {
	return history.Entry{
		ID:             d.EntryID,
		Kind:           history.KindMedication,
		CreatedAt:      d.TakenAt,
		Author:         d.Author,
		MedicationName: s.MedicationName,
		Dosage:         s.Dosage,
		Note:           d.Note,
		ScheduleID:     s.ID,
	}
}
