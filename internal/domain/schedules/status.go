package schedules

import "time"

// DefaultNearWindow: una dosis a menos de esto se muestra como "próxima".
const DefaultNearWindow = 45 * time.Minute

type Status string

const (
	StatusNormal   Status = "normal"
	StatusUpcoming Status = "upcoming"
	StatusOverdue  Status = "overdue"
	StatusFinished Status = "finished"
)

// Due es el estado derivado de un schedule en un instante. No se persiste.
type Due struct {
	Schedule Schedule

	NextDueAt time.Time
	HasNext   bool

	Status Status
}

// PendingDose es la dosis que se esperaba sin contar el catch-up:
// StartAt si nunca se registró una toma, si no LastTakenAt + Frequency.
func PendingDose(s Schedule) time.Time {
	if s.LastTakenAt != nil {
		return s.LastTakenAt.Add(s.Frequency)
	}
	return s.StartAt
}

func Evaluate(s Schedule, now time.Time, nearWindow time.Duration) Due {
	next, ok := NextDue(s, now)
	d := Due{Schedule: s, NextDueAt: next, HasNext: ok}

	switch {
	case !ok:
		d.Status = StatusFinished
	case PendingDose(s).Before(now):
		d.Status = StatusOverdue
	case next.Sub(now) <= nearWindow:
		d.Status = StatusUpcoming
	default:
		d.Status = StatusNormal
	}
	return d
}

func Classify(s Schedule, now time.Time, nearWindow time.Duration) Status {
	return Evaluate(s, now, nearWindow).Status
}
