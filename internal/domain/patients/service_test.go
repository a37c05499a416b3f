package patients

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Patient
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Patient{}}
}

func (r *testRepo) Create(ctx context.Context, p Patient) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Patient) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Patient, error) {
	out := make([]Patient, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Patient, error) {
	out := make([]Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
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

type recordingDependent struct {
	deleted []string
	err     error
}

func (d *recordingDependent) DeleteByPatient(ctx context.Context, patientID string) error {
	if d.err != nil {
		return d.err
	}
	d.deleted = append(d.deleted, patientID)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_CleansInput(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "u1", CreateInput{
		Name:          "  Ana  ",
		Relationship:  "mother",
		DiagnosisTags: []string{"breast cancer", " ", "Breast Cancer", "HER2+"},
		CareTeam:      []CareTeamMember{{Name: " Dr. Lee ", Role: "oncologist"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Ana" || p.UserID != "u1" {
		t.Fatalf("unexpected patient %+v", p)
	}
	if len(p.DiagnosisTags) != 2 || p.DiagnosisTags[0] != "breast cancer" || p.DiagnosisTags[1] != "HER2+" {
		t.Fatalf("unexpected tags %v", p.DiagnosisTags)
	}
	if len(p.CareTeam) != 1 || p.CareTeam[0].Name != "Dr. Lee" {
		t.Fatalf("unexpected care team %+v", p.CareTeam)
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", CreateInput{Name: "Ana"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing user, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateInput{Name: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateInput{Name: "Ana", CareTeam: []CareTeamMember{{Role: "nurse"}}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unnamed care team member, got %v", err)
	}
}

func TestService_Update_Patch(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	p, _ := svc.Create(ctx, "u1", CreateInput{Name: "Ana", Diagnosis: "x", DiagnosisTags: []string{"a"}})

	diag := "Stage II"
	updated, err := svc.Update(ctx, p.ID, "u1", UpdateInput{Diagnosis: &diag})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Diagnosis != "Stage II" || updated.Name != "Ana" || len(updated.DiagnosisTags) != 1 {
		t.Fatalf("unexpected update %+v", updated)
	}

	cleared, err := svc.Update(ctx, p.ID, "u1", UpdateInput{DiagnosisTags: []string{}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(cleared.DiagnosisTags) != 0 {
		t.Fatalf("expected tags cleared, got %v", cleared.DiagnosisTags)
	}

	if _, err := svc.Update(ctx, p.ID, "intruder", UpdateInput{Diagnosis: &diag}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Delete_Cascades(t *testing.T) {
	repo := newTestRepo()
	regimen := &recordingDependent{}
	saved := &recordingDependent{}
	svc := NewService(repo, regimen, saved)
	ctx := context.Background()

	p, _ := svc.Create(ctx, "u1", CreateInput{Name: "Ana"})

	if err := svc.Delete(ctx, p.ID, "intruder"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(regimen.deleted) != 0 {
		t.Fatalf("dependents must not be touched on forbidden delete")
	}

	if err := svc.Delete(ctx, p.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(regimen.deleted) != 1 || len(saved.deleted) != 1 || regimen.deleted[0] != p.ID {
		t.Fatalf("expected cascade to both dependents, got %v %v", regimen.deleted, saved.deleted)
	}
	if _, err := svc.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_DependentFailureKeepsPatient(t *testing.T) {
	repo := newTestRepo()
	boom := errors.New("boom")
	svc := NewService(repo, &recordingDependent{err: boom})
	ctx := context.Background()

	p, _ := svc.Create(ctx, "u1", CreateInput{Name: "Ana"})

	if err := svc.Delete(ctx, p.ID, "u1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped dependent error, got %v", err)
	}
	if _, err := svc.GetByID(ctx, p.ID); err != nil {
		t.Fatalf("patient must survive a failed cascade: %v", err)
	}
}

func TestService_OwnerOf(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	p, _ := svc.Create(ctx, "u1", CreateInput{Name: "Ana"})

	owner, err := svc.OwnerOf(ctx, p.ID)
	if err != nil || owner != "u1" {
		t.Fatalf("expected u1, got %q (%v)", owner, err)
	}
	if _, err := svc.OwnerOf(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
