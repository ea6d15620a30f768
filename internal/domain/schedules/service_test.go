package schedules

import (
	"context"
	"errors"
	"testing"
	"time"

	"caretrack/internal/domain/history"
	"caretrack/internal/platform/clock"
)

type testRepo struct {
	items   map[string]Schedule
	entries []history.Entry
}

func newTestRepo() *testRepo {
	return &testRepo{items: map[string]Schedule{}}
}

func (r *testRepo) Create(ctx context.Context, s Schedule) error {
	r.items[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Schedule, error) {
	s, ok := r.items[id]
	if !ok {
		return Schedule{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) List(ctx context.Context) ([]Schedule, error) {
	out := make([]Schedule, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, s Schedule) error {
	if _, ok := r.items[s.ID]; !ok {
		return ErrNotFound
	}
	r.items[s.ID] = s
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *testRepo) RecordDose(ctx context.Context, id string, d Dose) (Schedule, error) {
	s, ok := r.items[id]
	if !ok {
		return Schedule{}, ErrNotFound
	}
	taken := d.TakenAt
	s.LastTakenAt = &taken
	r.items[id] = s
	r.entries = append(r.entries, d.Entry(s))
	return s, nil
}

type countingNotifier struct{ n int }

func (c *countingNotifier) SchedulesChanged() { c.n++ }

func newTestService(now time.Time) (*Service, *testRepo, *countingNotifier) {
	repo := newTestRepo()
	n := &countingNotifier{}
	svc := NewService(repo, Options{Clock: clock.NewFake(now), Notifier: n})
	return svc, repo, n
}

func TestService_Create_Validation(t *testing.T) {
	svc, _, n := newTestService(t0)
	ctx := context.Background()

	cases := []CreateInput{
		{MedicationName: " ", Frequency: time.Hour, StartAt: t0},
		{MedicationName: "Dipirona", StartAt: t0},
		{MedicationName: "Dipirona", Frequency: -time.Hour, StartAt: t0},
		{MedicationName: "Dipirona", Frequency: 448384 * time.Nanosecond, StartAt: t0},
		{MedicationName: "Dipirona", Frequency: time.Second + time.Microsecond, StartAt: t0},
		{MedicationName: "Dipirona", Frequency: time.Hour, StartAt: t0, EndAt: ptr(t0.Add(-time.Hour))},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if n.n != 0 {
		t.Fatalf("rejected input must not notify, got %d", n.n)
	}
}

func TestService_Create_PersistsAndNotifies(t *testing.T) {
	svc, repo, n := newTestService(t0)

	s, err := svc.Create(context.Background(), CreateInput{
		MedicationName: " Amoxicilina ",
		Dosage:         "500mg",
		Frequency:      8 * time.Hour,
		StartAt:        t0,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if s.ID == "" || s.MedicationName != "Amoxicilina" {
		t.Fatalf("unexpected schedule %#v", s)
	}
	if _, ok := repo.items[s.ID]; !ok {
		t.Fatalf("expected schedule persisted")
	}
	if n.n != 1 {
		t.Fatalf("expected 1 change notification, got %d", n.n)
	}
}

func TestService_Update_ClearsEndAtAndKeepsOtherFields(t *testing.T) {
	svc, _, _ := newTestService(t0)
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateInput{
		MedicationName: "Dipirona",
		Dosage:         "20 gotas",
		Frequency:      6 * time.Hour,
		StartAt:        t0,
		EndAt:          ptr(t0.Add(72 * time.Hour)),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	freq := 4 * time.Hour
	updated, err := svc.Update(ctx, s.ID, UpdateInput{
		Frequency: &freq,
		EndAt:     OptionalTime{Present: true},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Frequency != freq || updated.EndAt != nil || updated.Dosage != "20 gotas" {
		t.Fatalf("unexpected update result %#v", updated)
	}
}

func TestService_Update_UnknownID(t *testing.T) {
	svc, _, _ := newTestService(t0)

	name := "x"
	if _, err := svc.Update(context.Background(), "missing", UpdateInput{MedicationName: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_RecordDose_SetsLastTakenAndAppendsHistory(t *testing.T) {
	now := t0.Add(3 * time.Hour)
	svc, repo, n := newTestService(now)
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateInput{MedicationName: "Dipirona", Dosage: "1g", Frequency: 6 * time.Hour, StartAt: t0})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := svc.RecordDose(ctx, s.ID, DoseInput{Author: "Ana"})
	if err != nil {
		t.Fatalf("RecordDose error: %v", err)
	}
	if got.LastTakenAt == nil || !got.LastTakenAt.Equal(now) {
		t.Fatalf("expected last taken %v, got %v", now, got.LastTakenAt)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.Kind != history.KindMedication || e.ScheduleID != s.ID || e.Dosage != "1g" || e.Author != "Ana" {
		t.Fatalf("unexpected history entry %#v", e)
	}
	if n.n != 2 {
		t.Fatalf("expected notifications for create and dose, got %d", n.n)
	}

	// La próxima dosis queda a un período de la toma.
	if d := svc.Evaluate(got); !d.NextDueAt.Equal(now.Add(6 * time.Hour)) {
		t.Fatalf("expected next due %v, got %v", now.Add(6*time.Hour), d.NextDueAt)
	}
}

func TestService_RecordDose_UnknownOrMissingID(t *testing.T) {
	svc, repo, _ := newTestService(t0)
	ctx := context.Background()

	if _, err := svc.RecordDose(ctx, "  ", DoseInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.RecordDose(ctx, "ghost", DoseInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.items) != 0 || len(repo.entries) != 0 {
		t.Fatalf("unknown id must not create anything")
	}
}

func TestService_ListDue_SortedFinishedLast(t *testing.T) {
	now := t0.Add(time.Hour)
	svc, _, _ := newTestService(now)
	ctx := context.Background()

	mustCreate := func(in CreateInput) Schedule {
		t.Helper()
		s, err := svc.Create(ctx, in)
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		return s
	}

	finished := mustCreate(CreateInput{MedicationName: "A", Frequency: 10 * time.Minute, StartAt: t0, EndAt: ptr(t0.Add(30 * time.Minute))})
	later := mustCreate(CreateInput{MedicationName: "B", Frequency: 12 * time.Hour, StartAt: now.Add(5 * time.Hour)})
	sooner := mustCreate(CreateInput{MedicationName: "C", Frequency: 2 * time.Hour, StartAt: t0})

	items, err := svc.ListDue(ctx)
	if err != nil {
		t.Fatalf("ListDue error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	order := []string{items[0].Schedule.ID, items[1].Schedule.ID, items[2].Schedule.ID}
	want := []string{sooner.ID, later.ID, finished.ID}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order at %d: got %v want %v", i, order, want)
		}
	}
	if items[2].Status != StatusFinished {
		t.Fatalf("expected last item finished, got %s", items[2].Status)
	}
}
