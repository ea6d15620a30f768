package history

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"caretrack/internal/platform/clock"
)

type testRepo struct {
	entries []Entry
}

func (r *testRepo) Append(ctx context.Context, e Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func TestService_AddMedication_RequiresName(t *testing.T) {
	svc := NewService(&testRepo{}, clock.NewFake(time.Now()))

	_, err := svc.AddMedication(context.Background(), MedicationInput{MedicationName: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_AddComment_DefaultsCreatedAtToNow(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &testRepo{}
	svc := NewService(repo, clock.NewFake(now))

	e, err := svc.AddComment(context.Background(), CommentInput{Message: " slept well ", Author: "Ana"})
	if err != nil {
		t.Fatalf("AddComment error: %v", err)
	}
	if e.Kind != KindComment || e.Message != "slept well" || !e.CreatedAt.Equal(now) {
		t.Fatalf("unexpected entry %#v", e)
	}
	if e.ID == "" || len(repo.entries) != 1 {
		t.Fatalf("expected entry persisted with id")
	}
}

func TestService_AddComment_RejectsEmpty(t *testing.T) {
	svc := NewService(&testRepo{}, clock.NewFake(time.Now()))

	if _, err := svc.AddComment(context.Background(), CommentInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_List_NewestFirstWithDefaultLimit(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &testRepo{}
	svc := NewService(repo, clock.NewFake(base))

	for i := 0; i < 3; i++ {
		if _, err := svc.AddMedication(context.Background(), MedicationInput{
			MedicationName: "Dipirona",
			TakenAt:        base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("AddMedication error: %v", err)
		}
	}

	items, err := svc.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 3 || !items[0].CreatedAt.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("expected newest first, got %#v", items)
	}
}
