package history

import "time"

type Kind string

const (
	KindMedication Kind = "medication"
	KindComment    Kind = "comment"
)

// Entry es append-only: no se edita ni se borra.
type Entry struct {
	ID   string
	Kind Kind

	CreatedAt time.Time
	Author    string

	// medication
	MedicationName string
	Dosage         string
	Note           string
	ScheduleID     string // back-reference opcional al schedule que la originó

	// comment
	Message string
}
