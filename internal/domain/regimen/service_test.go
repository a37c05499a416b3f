package regimen

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	order []string
	byID  map[string]Item
	err   error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Item{}}
}

func (r *testRepo) Create(ctx context.Context, it Item) error {
	r.byID[it.ID] = it
	r.order = append(r.order, it.ID)
	return nil
}

func (r *testRepo) Update(ctx context.Context, it Item) error {
	if _, ok := r.byID[it.ID]; !ok {
		return ErrNotFound
	}
	r.byID[it.ID] = it
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Item, error) {
	it, ok := r.byID[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

// ListByPatient devuelve en orden inverso de inserción (más recientes primero).
func (r *testRepo) ListByPatient(ctx context.Context, userID, patientID string, f ListFilter) ([]Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Item, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		it, ok := r.byID[r.order[i]]
		if !ok || it.UserID != userID || it.PatientID != patientID {
			continue
		}
		if f.ActiveOnly && !it.IsActive {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	for id, it := range r.byID {
		if it.PatientID == patientID {
			delete(r.byID, id)
		}
	}
	return nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestService_Create_DefaultsToActive(t *testing.T) {
	svc := NewService(newTestRepo())

	it, err := svc.Create(context.Background(), "u1", "p1", CreateInput{
		Name:     " Warfarin ",
		Category: CategoryMedication,
		Dosage:   "5mg",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !it.IsActive || it.Name != "Warfarin" || it.PatientID != "p1" {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing name", CreateInput{Category: CategoryMedication}},
		{"bad category", CreateInput{Name: "x", Category: "food"}},
		{"end before start", CreateInput{Name: "x", Category: CategoryTherapy, StartDate: date(2026, 2, 1), EndDate: date(2026, 1, 1)}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, "u1", "p1", tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestService_ListActive_FiltersAndOrders(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	inactive := false
	a, _ := svc.Create(ctx, "u1", "p1", CreateInput{Name: "A", Category: CategorySupplement})
	_, _ = svc.Create(ctx, "u1", "p1", CreateInput{Name: "B", Category: CategorySupplement, IsActive: &inactive})
	c, _ := svc.Create(ctx, "u1", "p1", CreateInput{Name: "C", Category: CategorySupplement})
	_, _ = svc.Create(ctx, "u1", "p2", CreateInput{Name: "D", Category: CategorySupplement})

	items, err := svc.ListActive(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(items) != 2 || items[0].ID != c.ID || items[1].ID != a.ID {
		t.Fatalf("expected [C, A], got %+v", items)
	}

	all, _ := svc.List(ctx, "u1", "p1", false)
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}
}

func TestService_ListActive_WrapsStoreError(t *testing.T) {
	repo := newTestRepo()
	boom := errors.New("boom")
	repo.err = boom
	svc := NewService(repo)

	_, err := svc.ListActive(context.Background(), "u1", "p1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestService_Update_Patch(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	it, _ := svc.Create(ctx, "u1", "p1", CreateInput{Name: "Iron", Category: CategorySupplement, StartDate: date(2026, 1, 1)})

	off := false
	updated, err := svc.Update(ctx, it.ID, "u1", UpdateInput{
		IsActive:  &off,
		StartDate: PatchDate{Present: true},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsActive || updated.StartDate != nil || updated.Name != "Iron" {
		t.Fatalf("unexpected update %+v", updated)
	}

	if _, err := svc.Update(ctx, it.ID, "intruder", UpdateInput{IsActive: &off}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	empty := " "
	if _, err := svc.Update(ctx, it.ID, "u1", UpdateInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	it, _ := svc.Create(ctx, "u1", "p1", CreateInput{Name: "Iron", Category: CategorySupplement})

	if err := svc.Delete(ctx, it.ID, "intruder"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, it.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, it.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
