package schedules

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"caretrack/internal/platform/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("schedule not found")
)

// ChangeNotifier recibe un aviso cada vez que cambia el conjunto de schedules
// (alta, edición, baja o toma registrada).
type ChangeNotifier interface {
	SchedulesChanged()
}

type Options struct {
	Clock      clock.Clock
	Notifier   ChangeNotifier
	NearWindow time.Duration
}

type Service struct {
	repo       Repository
	now        func() time.Time
	notifier   ChangeNotifier
	nearWindow time.Duration
}

func NewService(repo Repository, opts Options) *Service {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	near := opts.NearWindow
	if near <= 0 {
		near = DefaultNearWindow
	}
	return &Service{
		repo:       repo,
		now:        clk.Now,
		notifier:   opts.Notifier,
		nearWindow: near,
	}
}

type CreateInput struct {
	MedicationName string
	Dosage         string
	Frequency      time.Duration
	StartAt        time.Time
	EndAt          *time.Time
	LastTakenAt    *time.Time
	Notes          string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Schedule, error) {
	sc := Schedule{
		ID:             uuid.NewString(),
		MedicationName: strings.TrimSpace(in.MedicationName),
		Dosage:         strings.TrimSpace(in.Dosage),
		Frequency:      in.Frequency,
		StartAt:        in.StartAt,
		EndAt:          in.EndAt,
		LastTakenAt:    in.LastTakenAt,
		Notes:          strings.TrimSpace(in.Notes),
	}
	if err := validate(sc); err != nil {
		return Schedule{}, err
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		return Schedule{}, err
	}
	s.changed()
	return sc, nil
}

// OptionalTime distingue "no enviado" de "enviado vacío" (= limpiar).
type OptionalTime struct {
	Present bool
	Value   *time.Time
}

// UpdateInput: punteros nil = no tocar.
type UpdateInput struct {
	MedicationName *string
	Dosage         *string
	Frequency      *time.Duration
	StartAt        *time.Time
	EndAt          OptionalTime
	LastTakenAt    OptionalTime
	Notes          *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Schedule, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Schedule{}, err
	}

	if in.MedicationName != nil {
		current.MedicationName = strings.TrimSpace(*in.MedicationName)
	}
	if in.Dosage != nil {
		current.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		current.Frequency = *in.Frequency
	}
	if in.StartAt != nil {
		current.StartAt = *in.StartAt
	}
	if in.EndAt.Present {
		current.EndAt = in.EndAt.Value
	}
	if in.LastTakenAt.Present {
		current.LastTakenAt = in.LastTakenAt.Value
	}
	if in.Notes != nil {
		current.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := validate(current); err != nil {
		return Schedule{}, err
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return Schedule{}, err
	}
	s.changed()
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Schedule{}, fmt.Errorf("%w: missing schedule information", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Schedule, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: missing schedule information", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed()
	return nil
}

type DoseInput struct {
	TakenAt time.Time // zero => ahora
	Author  string
	Note    string
}

// RecordDose registra una toma: LastTakenAt + entrada en el historial.
// Si el id no existe devuelve ErrNotFound; nunca crea un schedule.
func (s *Service) RecordDose(ctx context.Context, id string, in DoseInput) (Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Schedule{}, fmt.Errorf("%w: missing schedule information", ErrInvalidInput)
	}

	takenAt := in.TakenAt
	if takenAt.IsZero() {
		takenAt = s.now()
	}

	sc, err := s.repo.RecordDose(ctx, id, Dose{
		EntryID: uuid.NewString(),
		TakenAt: takenAt,
		Author:  strings.TrimSpace(in.Author),
		Note:    strings.TrimSpace(in.Note),
	})
	if err != nil {
		return Schedule{}, err
	}
	s.changed()
	return sc, nil
}

// ListDue devuelve los schedules con su próxima dosis y estado, ordenados
// por próxima dosis (los finalizados al final).
func (s *Service) ListDue(ctx context.Context) ([]Due, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]Due, 0, len(items))
	for _, sc := range items {
		out = append(out, Evaluate(sc, now, s.nearWindow))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HasNext != out[j].HasNext {
			return out[i].HasNext
		}
		if !out[i].NextDueAt.Equal(out[j].NextDueAt) {
			return out[i].NextDueAt.Before(out[j].NextDueAt)
		}
		return out[i].Schedule.MedicationName < out[j].Schedule.MedicationName
	})
	return out, nil
}

func (s *Service) Evaluate(sc Schedule) Due {
	return Evaluate(sc, s.now(), s.nearWindow)
}

func (s *Service) changed() {
	if s.notifier != nil {
		s.notifier.SchedulesChanged()
	}
}

func validate(s Schedule) error {
	if s.MedicationName == "" {
		return fmt.Errorf("%w: medication name is required for a schedule", ErrInvalidInput)
	}
	if s.Frequency <= 0 {
		return fmt.Errorf("%w: please provide how often the medication should be taken", ErrInvalidInput)
	}
	// Los stores guardan la frecuencia en milisegundos enteros.
	if s.Frequency < time.Millisecond || s.Frequency%time.Millisecond != 0 {
		return fmt.Errorf("%w: frequency must be a whole number of milliseconds", ErrInvalidInput)
	}
	if s.StartAt.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if s.EndAt != nil && s.EndAt.Before(s.StartAt) {
		return fmt.Errorf("%w: end date must not be before the start time", ErrInvalidInput)
	}
	return nil
}
