package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"caretrack/internal/platform/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Service{
		repo: repo,
		now:  clk.Now,
	}
}

type MedicationInput struct {
	MedicationName string
	Dosage         string
	Note           string
	Author         string
	TakenAt        time.Time // zero => ahora
}

type CommentInput struct {
	Message   string
	Author    string
	CreatedAt time.Time // zero => ahora
}

// AddMedication registra una toma suelta (sin schedule).
func (s *Service) AddMedication(ctx context.Context, in MedicationInput) (Entry, error) {
	name := strings.TrimSpace(in.MedicationName)
	if name == "" {
		return Entry{}, fmt.Errorf("%w: medication name is required", ErrInvalidInput)
	}

	e := Entry{
		ID:             uuid.NewString(),
		Kind:           KindMedication,
		CreatedAt:      s.orNow(in.TakenAt),
		Author:         strings.TrimSpace(in.Author),
		MedicationName: name,
		Dosage:         strings.TrimSpace(in.Dosage),
		Note:           strings.TrimSpace(in.Note),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) AddComment(ctx context.Context, in CommentInput) (Entry, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return Entry{}, fmt.Errorf("%w: please write a brief comment before submitting", ErrInvalidInput)
	}

	e := Entry{
		ID:        uuid.NewString(),
		Kind:      KindComment,
		CreatedAt: s.orNow(in.CreatedAt),
		Author:    strings.TrimSpace(in.Author),
		Message:   msg,
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	filter.Limit = NormalizeLimit(filter.Limit)
	return s.repo.List(ctx, filter)
}

func (s *Service) orNow(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}
