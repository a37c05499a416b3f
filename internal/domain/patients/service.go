package patients

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
	ErrNotFound     = errors.New("patient not found")
	ErrForbidden    = errors.New("forbidden")
)

// DependentData es cualquier dato colgado de un paciente que debe borrarse con él
// (items del régimen, interacciones guardadas).
type DependentData interface {
	DeleteByPatient(ctx context.Context, patientID string) error
}

type Service struct {
	repo       Repository
	dependents []DependentData
	now        func() time.Time
}

func NewService(repo Repository, dependents ...DependentData) *Service {
	return &Service{
		repo:       repo,
		dependents: dependents,
		now:        time.Now,
	}
}

type CreateInput struct {
	Name          string
	Relationship  string
	Diagnosis     string
	DiagnosisTags []string
	Notes         string
	CareTeam      []CareTeamMember
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Patient, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Patient{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Patient{}, ErrInvalidInput
	}
	team, err := cleanCareTeam(in.CareTeam)
	if err != nil {
		return Patient{}, err
	}

	now := s.now()
	p := Patient{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		Relationship:  strings.TrimSpace(in.Relationship),
		Diagnosis:     strings.TrimSpace(in.Diagnosis),
		DiagnosisTags: cleanTags(in.DiagnosisTags),
		Notes:         strings.TrimSpace(in.Notes),
		CareTeam:      team,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Patient{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Patient, error) {
	return s.repo.ListByUser(ctx, strings.TrimSpace(userID))
}

func (s *Service) ListAll(ctx context.Context) ([]Patient, error) {
	return s.repo.ListAll(ctx)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar. Slices nil = no tocar; vacío = limpiar.
	Name          *string
	Relationship  *string
	Diagnosis     *string
	DiagnosisTags []string
	Notes         *string
	CareTeam      []CareTeamMember
}

func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (Patient, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}
	if current.UserID != strings.TrimSpace(userID) {
		return Patient{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Patient{}, ErrInvalidInput
		}
		current.Name = name
	}
	if in.Relationship != nil {
		current.Relationship = strings.TrimSpace(*in.Relationship)
	}
	if in.Diagnosis != nil {
		current.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.DiagnosisTags != nil {
		current.DiagnosisTags = cleanTags(in.DiagnosisTags)
	}
	if in.Notes != nil {
		current.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.CareTeam != nil {
		team, err := cleanCareTeam(in.CareTeam)
		if err != nil {
			return Patient{}, err
		}
		current.CareTeam = team
	}

	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return Patient{}, err
	}
	return current, nil
}

// Delete borra primero los datos dependientes y al final el paciente.
// Si falla un dependiente, el paciente queda y el borrado puede reintentarse.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != strings.TrimSpace(userID) {
		return ErrForbidden
	}

	for _, d := range s.dependents {
		if err := d.DeleteByPatient(ctx, current.ID); err != nil {
			return fmt.Errorf("delete patient data: %w", err)
		}
	}
	return s.repo.Delete(ctx, current.ID)
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func cleanCareTeam(in []CareTeamMember) ([]CareTeamMember, error) {
	out := make([]CareTeamMember, 0, len(in))
	for _, m := range in {
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			return nil, ErrInvalidInput
		}
		m.Role = strings.TrimSpace(m.Role)
		m.Contact = strings.TrimSpace(m.Contact)
		out = append(out, m)
	}
	return out, nil
}
