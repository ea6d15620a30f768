package catalog

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
	ErrNotFound     = errors.New("medication not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type AddInput struct {
	Name    string
	Purpose Purpose
}

// Add agrega un medicamento al catálogo. Si ya existe uno con el mismo
// nombre (sin distinguir mayúsculas) devuelve el existente, sin crear nada.
func (s *Service) Add(ctx context.Context, in AddInput) (Medication, bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Medication{}, false, fmt.Errorf("%w: medication name is required", ErrInvalidInput)
	}
	if !IsValidPurpose(in.Purpose) {
		return Medication{}, false, fmt.Errorf("%w: invalid purpose", ErrInvalidInput)
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return Medication{}, false, err
	}
	for _, m := range existing {
		if strings.EqualFold(m.Name, name) {
			return m, false, nil
		}
	}

	m := Medication{
		ID:      uuid.NewString(),
		Name:    name,
		Purpose: in.Purpose,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, false, err
	}
	return m, true, nil
}

// List ordena por nombre para que la UI no dependa del orden del store.
func (s *Service) List(ctx context.Context) ([]Medication, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: missing medication id", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
