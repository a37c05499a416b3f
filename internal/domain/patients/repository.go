package patients

import "context"

type Repository interface {
	Create(ctx context.Context, p Patient) error
	Update(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	// ListByUser devuelve los más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Patient, error)
	// ListAll se usa en el barrido programado de interacciones.
	ListAll(ctx context.Context) ([]Patient, error)
	Delete(ctx context.Context, id string) error
}
