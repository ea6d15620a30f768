package schedules

import "context"

// Repository es el Schedule Store. Los adapters devuelven ErrNotFound
// (de este paquete) cuando el id no existe.
type Repository interface {
	Create(ctx context.Context, s Schedule) error
	GetByID(ctx context.Context, id string) (Schedule, error)
	List(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, s Schedule) error
	Delete(ctx context.Context, id string) error

	// RecordDose actualiza LastTakenAt y agrega d.Entry(s) al historial en
	// una sola operación.
	RecordDose(ctx context.Context, id string, d Dose) (Schedule, error)
}
