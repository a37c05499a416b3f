package interactions

import "context"

type Repository interface {
	Create(ctx context.Context, in Interaction) error
	Update(ctx context.Context, in Interaction) error
	GetByID(ctx context.Context, id string) (Interaction, error)
	// ListByPatient devuelve las más recientes primero.
	ListByPatient(ctx context.Context, userID, patientID string) ([]Interaction, error)
	Delete(ctx context.Context, id string) error
	DeleteByPatient(ctx context.Context, patientID string) error
}
