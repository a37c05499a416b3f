package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"regimen-tracker/internal/domain/patients"
)

type patientRepo struct {
	mu   sync.RWMutex
	seq  int
	byID map[string]patientRow
}

type patientRow struct {
	p   patients.Patient
	seq int
}

func NewPatientRepo() patients.Repository {
	return &patientRepo{
		byID: make(map[string]patientRow),
	}
}

func (r *patientRepo) Create(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("patient already exists")
	}
	r.seq++
	r.byID[p.ID] = patientRow{p: clonePatient(p), seq: r.seq}
	return nil
}

func (r *patientRepo) Update(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.byID[p.ID]
	if !exists {
		return fmt.Errorf("update patient %s: %w", p.ID, patients.ErrNotFound)
	}
	row.p = clonePatient(p)
	r.byID[p.ID] = row
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return clonePatient(row.p), nil
}

func (r *patientRepo) ListByUser(ctx context.Context, userID string) ([]patients.Patient, error) {
	return r.list(func(p patients.Patient) bool { return p.UserID == userID }), nil
}

func (r *patientRepo) ListAll(ctx context.Context) ([]patients.Patient, error) {
	return r.list(func(patients.Patient) bool { return true }), nil
}

func (r *patientRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return patients.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// list ordena por created_at desc; empates por orden de inserción (último primero).
func (r *patientRepo) list(keep func(patients.Patient) bool) []patients.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]patientRow, 0)
	for _, row := range r.byID {
		if keep(row.p) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].p.CreatedAt.Equal(rows[j].p.CreatedAt) {
			return rows[i].p.CreatedAt.After(rows[j].p.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]patients.Patient, 0, len(rows))
	for _, row := range rows {
		out = append(out, clonePatient(row.p))
	}
	return out
}

func clonePatient(p patients.Patient) patients.Patient {
	p.DiagnosisTags = append([]string(nil), p.DiagnosisTags...)
	p.CareTeam = append([]patients.CareTeamMember(nil), p.CareTeam...)
	return p
}
