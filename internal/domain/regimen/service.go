package regimen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("regimen item not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Category  Category
	Dosage    string
	Frequency string
	StartDate *time.Time
	EndDate   *time.Time
	Source    string
	Notes     string
	IsActive  *bool // nil => activo
}

func (s *Service) Create(ctx context.Context, userID, patientID string, in CreateInput) (Item, error) {
	userID = strings.TrimSpace(userID)
	patientID = strings.TrimSpace(patientID)
	if userID == "" || patientID == "" {
		return Item{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Item{}, ErrInvalidInput
	}
	if !in.Category.Valid() {
		return Item{}, ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return Item{}, ErrInvalidInput
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := s.now()
	it := Item{
		ID:        uuid.NewString(),
		UserID:    userID,
		PatientID: patientID,
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: strings.TrimSpace(in.Frequency),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Source:    strings.TrimSpace(in.Source),
		Notes:     strings.TrimSpace(in.Notes),
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, userID, patientID string, activeOnly bool) ([]Item, error) {
	return s.repo.ListByPatient(ctx, userID, patientID, ListFilter{ActiveOnly: activeOnly})
}

// ListActive es el "regimen store" que consume el chequeo de interacciones:
// solo items activos, en el orden natural del repo (más recientes primero).
func (s *Service) ListActive(ctx context.Context, userID, patientID string) ([]Item, error) {
	userID = strings.TrimSpace(userID)
	patientID = strings.TrimSpace(patientID)
	if userID == "" || patientID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListByPatient(ctx, userID, patientID, ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list active regimen items: %w", err)
	}
	return items, nil
}

// PatchDate distingue "no enviado" de "null" (limpiar).
type PatchDate struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	Category  *Category
	Dosage    *string
	Frequency *string
	StartDate PatchDate
	EndDate   PatchDate
	Source    *string
	Notes     *string
	IsActive  *bool
}

func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (Item, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if current.UserID != strings.TrimSpace(userID) {
		return Item{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Item{}, ErrInvalidInput
		}
		current.Name = name
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return Item{}, ErrInvalidInput
		}
		current.Category = *in.Category
	}
	if in.Dosage != nil {
		current.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		current.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.StartDate.Present {
		current.StartDate = in.StartDate.Value
	}
	if in.EndDate.Present {
		current.EndDate = in.EndDate.Value
	}
	if current.StartDate != nil && current.EndDate != nil && current.EndDate.Before(*current.StartDate) {
		return Item{}, ErrInvalidInput
	}
	if in.Source != nil {
		current.Source = strings.TrimSpace(*in.Source)
	}
	if in.Notes != nil {
		current.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.IsActive != nil {
		current.IsActive = *in.IsActive
	}

	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return Item{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != strings.TrimSpace(userID) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, current.ID)
}

// DeleteByPatient se usa en el borrado en cascada de un paciente.
func (s *Service) DeleteByPatient(ctx context.Context, patientID string) error {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByPatient(ctx, patientID)
}
