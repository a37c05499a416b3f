package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"regimen-tracker/internal/domain/interactions"
)

type interactionRepo struct {
	mu   sync.RWMutex
	seq  int
	byID map[string]interactionRow
}

type interactionRow struct {
	in  interactions.Interaction
	seq int
}

func NewInteractionRepo() interactions.Repository {
	return &interactionRepo{
		byID: make(map[string]interactionRow),
	}
}

func (r *interactionRepo) Create(ctx context.Context, in interactions.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(in.ID) == "" {
		return errors.New("interaction id required")
	}
	if _, exists := r.byID[in.ID]; exists {
		return errors.New("interaction already exists")
	}
	r.seq++
	r.byID[in.ID] = interactionRow{in: cloneInteraction(in), seq: r.seq}
	return nil
}

func (r *interactionRepo) Update(ctx context.Context, in interactions.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.byID[in.ID]
	if !exists {
		return fmt.Errorf("update interaction %s: %w", in.ID, interactions.ErrNotFound)
	}
	row.in = cloneInteraction(in)
	r.byID[in.ID] = row
	return nil
}

func (r *interactionRepo) GetByID(ctx context.Context, id string) (interactions.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.byID[id]
	if !ok {
		return interactions.Interaction{}, interactions.ErrNotFound
	}
	return cloneInteraction(row.in), nil
}

func (r *interactionRepo) ListByPatient(ctx context.Context, userID, patientID string) ([]interactions.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]interactionRow, 0)
	for _, row := range r.byID {
		if row.in.UserID == userID && row.in.PatientID == patientID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].in.CreatedAt.Equal(rows[j].in.CreatedAt) {
			return rows[i].in.CreatedAt.After(rows[j].in.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]interactions.Interaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneInteraction(row.in))
	}
	return out, nil
}

func (r *interactionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return interactions.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *interactionRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, row := range r.byID {
		if row.in.PatientID == patientID {
			delete(r.byID, id)
		}
	}
	return nil
}

func cloneInteraction(in interactions.Interaction) interactions.Interaction {
	in.Sources = append([]interactions.Source(nil), in.Sources...)
	return in
}
