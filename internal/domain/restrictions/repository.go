package restrictions

import "context"

type Repository interface {
	Create(ctx context.Context, r Restriction) error
	List(ctx context.Context) ([]Restriction, error)
	Delete(ctx context.Context, id string) error
}
