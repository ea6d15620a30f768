package restrictions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("restriction not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type AddInput struct {
	Category Category
	Title    string
	Details  string
}

// Add deduplica por categoría + título (sin distinguir mayúsculas);
// el bool indica si se creó un ítem nuevo.
func (s *Service) Add(ctx context.Context, in AddInput) (Restriction, bool, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Restriction{}, false, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return Restriction{}, false, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return Restriction{}, false, err
	}
	for _, r := range existing {
		if r.Category == in.Category && strings.EqualFold(r.Title, title) {
			return r, false, nil
		}
	}

	r := Restriction{
		ID:       uuid.NewString(),
		Category: in.Category,
		Title:    title,
		Details:  strings.TrimSpace(in.Details),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Restriction{}, false, err
	}
	return r, true, nil
}

// List agrupa por categoría (alimento primero) y luego por título.
func (s *Service) List(ctx context.Context) ([]Restriction, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: missing restriction id", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
