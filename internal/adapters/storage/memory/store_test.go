package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"caretrack/internal/domain/history"
	"caretrack/internal/domain/schedules"
)

func TestStore_RecordDose_UpdatesScheduleAndHistory(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	sc := schedules.Schedule{ID: "s1", MedicationName: "Dipirona", Dosage: "1g", Frequency: 6 * time.Hour, StartAt: t0}
	if err := st.Schedules().Create(ctx, sc); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	taken := t0.Add(time.Hour)
	got, err := st.Schedules().RecordDose(ctx, "s1", schedules.Dose{EntryID: "e1", TakenAt: taken, Author: "Ana"})
	if err != nil {
		t.Fatalf("RecordDose error: %v", err)
	}
	if got.LastTakenAt == nil || !got.LastTakenAt.Equal(taken) {
		t.Fatalf("expected last taken %v, got %v", taken, got.LastTakenAt)
	}

	entries, err := st.History().List(ctx, history.ListFilter{ScheduleID: "s1"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "e1" || entries[0].MedicationName != "Dipirona" {
		t.Fatalf("unexpected history %#v", entries)
	}
}

func TestStore_RecordDose_UnknownScheduleCreatesNothing(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	_, err := st.Schedules().RecordDose(ctx, "ghost", schedules.Dose{EntryID: "e1", TakenAt: time.Now()})
	if !errors.Is(err, schedules.ErrNotFound) {
		t.Fatalf("expected schedules.ErrNotFound, got %v", err)
	}

	list, _ := st.Schedules().List(ctx)
	entries, _ := st.History().List(ctx, history.ListFilter{})
	if len(list) != 0 || len(entries) != 0 {
		t.Fatalf("expected no records, got %d schedules and %d entries", len(list), len(entries))
	}
}

func TestStore_ReturnedSchedulesDoNotAlias(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	end := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)

	_ = st.Schedules().Create(ctx, schedules.Schedule{ID: "s1", MedicationName: "x", Frequency: time.Hour, EndAt: &end})

	got, _ := st.Schedules().GetByID(ctx, "s1")
	*got.EndAt = got.EndAt.Add(48 * time.Hour)

	again, _ := st.Schedules().GetByID(ctx, "s1")
	if !again.EndAt.Equal(end) {
		t.Fatalf("store state changed through returned pointer: %v", again.EndAt)
	}
}

func TestHistoryRepo_List_NewestFirstWithLimit(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		_ = st.History().Append(ctx, history.Entry{ID: id, Kind: history.KindComment, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	got, err := st.History().List(ctx, history.ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("unexpected order %#v", got)
	}
}
