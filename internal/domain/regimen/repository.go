package regimen

import "context"

type Repository interface {
	Create(ctx context.Context, it Item) error
	Update(ctx context.Context, it Item) error
	GetByID(ctx context.Context, id string) (Item, error)
	// ListByPatient devuelve los items más recientes primero (created_at DESC).
	ListByPatient(ctx context.Context, userID, patientID string, filter ListFilter) ([]Item, error)
	Delete(ctx context.Context, id string) error
	DeleteByPatient(ctx context.Context, patientID string) error
}

type ListFilter struct {
	ActiveOnly bool
}
