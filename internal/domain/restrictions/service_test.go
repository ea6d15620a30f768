package restrictions

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	items []Restriction
}

func (r *testRepo) Create(ctx context.Context, it Restriction) error {
	r.items = append(r.items, it)
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Restriction, error) {
	return append([]Restriction(nil), r.items...), nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestService_Add_DedupesWithinCategoryOnly(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	food, created, err := svc.Add(ctx, AddInput{Category: CategoryFood, Title: "Sal"})
	if err != nil || !created {
		t.Fatalf("first Add: created=%v err=%v", created, err)
	}

	dup, created, err := svc.Add(ctx, AddInput{Category: CategoryFood, Title: " sal "})
	if err != nil || created || dup.ID != food.ID {
		t.Fatalf("expected duplicate to return existing, got %#v created=%v err=%v", dup, created, err)
	}

	// Mismo título en otra categoría es otra restricción.
	if _, created, err := svc.Add(ctx, AddInput{Category: CategoryActivity, Title: "Sal"}); err != nil || !created {
		t.Fatalf("expected new restriction in other category, created=%v err=%v", created, err)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 restrictions, got %d", len(repo.items))
	}
}

func TestService_Add_Validation(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	if _, _, err := svc.Add(ctx, AddInput{Category: CategoryFood}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty title, got %v", err)
	}
	if _, _, err := svc.Add(ctx, AddInput{Category: "sono", Title: "Dormir cedo"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for invalid category, got %v", err)
	}
}

func TestService_Delete_Unknown(t *testing.T) {
	svc := NewService(&testRepo{})

	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
