package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"regimen-tracker/internal/domain/regimen"
)

type regimenRepo struct {
	mu   sync.RWMutex
	seq  int
	byID map[string]regimenRow
}

type regimenRow struct {
	it  regimen.Item
	seq int
}

func NewRegimenRepo() regimen.Repository {
	return &regimenRepo{
		byID: make(map[string]regimenRow),
	}
}

func (r *regimenRepo) Create(ctx context.Context, it regimen.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(it.ID) == "" {
		return errors.New("regimen item id required")
	}
	if _, exists := r.byID[it.ID]; exists {
		return errors.New("regimen item already exists")
	}
	r.seq++
	r.byID[it.ID] = regimenRow{it: it, seq: r.seq}
	return nil
}

func (r *regimenRepo) Update(ctx context.Context, it regimen.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.byID[it.ID]
	if !exists {
		return fmt.Errorf("update regimen item %s: %w", it.ID, regimen.ErrNotFound)
	}
	row.it = it
	r.byID[it.ID] = row
	return nil
}

func (r *regimenRepo) GetByID(ctx context.Context, id string) (regimen.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.byID[id]
	if !ok {
		return regimen.Item{}, regimen.ErrNotFound
	}
	return row.it, nil
}

// ListByPatient: created_at desc; con created_at igual, el último insertado primero.
// Este orden define el orden de los pares en el chequeo de interacciones.
func (r *regimenRepo) ListByPatient(ctx context.Context, userID, patientID string, f regimen.ListFilter) ([]regimen.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]regimenRow, 0)
	for _, row := range r.byID {
		if row.it.UserID != userID || row.it.PatientID != patientID {
			continue
		}
		if f.ActiveOnly && !row.it.IsActive {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].it.CreatedAt.Equal(rows[j].it.CreatedAt) {
			return rows[i].it.CreatedAt.After(rows[j].it.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]regimen.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.it)
	}
	return out, nil
}

func (r *regimenRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return regimen.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *regimenRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, row := range r.byID {
		if row.it.PatientID == patientID {
			delete(r.byID, id)
		}
	}
	return nil
}
