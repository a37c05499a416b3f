package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"regimen-tracker/internal/domain/interactions"
	"regimen-tracker/internal/domain/patients"
	"regimen-tracker/internal/domain/regimen"
)

func TestRegimenRepo_ListByPatient_OrderAndFilter(t *testing.T) {
	repo := NewRegimenRepo()
	ctx := context.Background()

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []regimen.Item{
		{ID: "old", UserID: "u1", PatientID: "p1", Name: "Old", IsActive: true, CreatedAt: t0},
		{ID: "tie1", UserID: "u1", PatientID: "p1", Name: "Tie 1", IsActive: true, CreatedAt: t0.Add(time.Hour)},
		{ID: "tie2", UserID: "u1", PatientID: "p1", Name: "Tie 2", IsActive: true, CreatedAt: t0.Add(time.Hour)},
		{ID: "off", UserID: "u1", PatientID: "p1", Name: "Off", IsActive: false, CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "other", UserID: "u1", PatientID: "p2", Name: "Other", IsActive: true, CreatedAt: t0},
	}
	for _, it := range items {
		if err := repo.Create(ctx, it); err != nil {
			t.Fatalf("Create %s: %v", it.ID, err)
		}
	}

	got, err := repo.ListByPatient(ctx, "u1", "p1", regimen.ListFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	want := []string{"tie2", "tie1", "old"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	all, _ := repo.ListByPatient(ctx, "u1", "p1", regimen.ListFilter{})
	if len(all) != 4 || all[0].ID != "off" {
		t.Fatalf("unexpected full list %+v", all)
	}

	if err := repo.DeleteByPatient(ctx, "p1"); err != nil {
		t.Fatalf("DeleteByPatient: %v", err)
	}
	left, _ := repo.ListByPatient(ctx, "u1", "p2", regimen.ListFilter{})
	if len(left) != 1 {
		t.Fatalf("other patients must be kept, got %d", len(left))
	}
}

func TestRegimenRepo_NotFound(t *testing.T) {
	repo := NewRegimenRepo()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, regimen.ErrNotFound) {
		t.Fatalf("expected regimen.ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, regimen.Item{ID: "missing"}); !errors.Is(err, regimen.ErrNotFound) {
		t.Fatalf("expected regimen.ErrNotFound, got %v", err)
	}
	if err := repo.Create(ctx, regimen.Item{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestPatientRepo_CopiesSlices(t *testing.T) {
	repo := NewPatientRepo()
	ctx := context.Background()

	p := patients.Patient{ID: "p1", UserID: "u1", Name: "Ana", DiagnosisTags: []string{"a"}}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.DiagnosisTags[0] = "mutated"

	got, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DiagnosisTags[0] != "a" {
		t.Fatalf("stored patient must not alias caller slices")
	}

	all, _ := repo.ListAll(ctx)
	mine, _ := repo.ListByUser(ctx, "u1")
	others, _ := repo.ListByUser(ctx, "u2")
	if len(all) != 1 || len(mine) != 1 || len(others) != 0 {
		t.Fatalf("unexpected lists %d %d %d", len(all), len(mine), len(others))
	}

	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "p1"); !errors.Is(err, patients.ErrNotFound) {
		t.Fatalf("expected patients.ErrNotFound, got %v", err)
	}
}

func TestInteractionRepo_CRUD(t *testing.T) {
	repo := NewInteractionRepo()
	ctx := context.Background()

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := interactions.Interaction{ID: "i1", UserID: "u1", PatientID: "p1", ItemIDs: [2]string{"a", "b"}, Severity: interactions.SeverityHigh, CreatedAt: t0}
	second := interactions.Interaction{ID: "i2", UserID: "u1", PatientID: "p1", ItemIDs: [2]string{"c", "d"}, Severity: interactions.SeverityLow, CreatedAt: t0.Add(time.Minute)}
	for _, in := range []interactions.Interaction{first, second} {
		if err := repo.Create(ctx, in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, _ := repo.ListByPatient(ctx, "u1", "p1")
	if len(list) != 2 || list[0].ID != "i2" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	first.DiscussedWithClinician = true
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.GetByID(ctx, "i1")
	if !got.DiscussedWithClinician {
		t.Fatalf("expected discussed flag persisted")
	}

	if err := repo.Delete(ctx, "i1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "i1"); !errors.Is(err, interactions.ErrNotFound) {
		t.Fatalf("expected interactions.ErrNotFound, got %v", err)
	}
	if err := repo.DeleteByPatient(ctx, "p1"); err != nil {
		t.Fatalf("DeleteByPatient: %v", err)
	}
	list, _ = repo.ListByPatient(ctx, "u1", "p1")
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}
