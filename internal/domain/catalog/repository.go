package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	List(ctx context.Context) ([]Medication, error)
	Delete(ctx context.Context, id string) error
}
