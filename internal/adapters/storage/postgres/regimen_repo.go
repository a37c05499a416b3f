package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"regimen-tracker/internal/domain/regimen"
)

type RegimenRepo struct {
	db *sql.DB
}

func NewRegimenRepo(db *sql.DB) *RegimenRepo {
	return &RegimenRepo{db: db}
}

const regimenColumns = `
	id, user_id, patient_id,
	name, category, dosage, frequency,
	start_date, end_date, source, notes,
	is_active, created_at, updated_at`

func (r *RegimenRepo) Create(ctx context.Context, it regimen.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO regimen_items (`+regimenColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		it.ID,
		it.UserID,
		it.PatientID,
		it.Name,
		string(it.Category),
		it.Dosage,
		it.Frequency,
		toNullDate(it.StartDate),
		toNullDate(it.EndDate),
		it.Source,
		it.Notes,
		it.IsActive,
		it.CreatedAt,
		it.UpdatedAt,
	)
	return err
}

func (r *RegimenRepo) Update(ctx context.Context, it regimen.Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE regimen_items
		SET
			name = $2,
			category = $3,
			dosage = $4,
			frequency = $5,
			start_date = $6,
			end_date = $7,
			source = $8,
			notes = $9,
			is_active = $10,
			updated_at = $11
		WHERE id = $1
	`,
		it.ID,
		it.Name,
		string(it.Category),
		it.Dosage,
		it.Frequency,
		toNullDate(it.StartDate),
		toNullDate(it.EndDate),
		it.Source,
		it.Notes,
		it.IsActive,
		it.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return regimen.ErrNotFound
	}
	return nil
}

func (r *RegimenRepo) GetByID(ctx context.Context, id string) (regimen.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return regimen.Item{}, regimen.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+regimenColumns+`
		FROM regimen_items
		WHERE id = $1
	`, id)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return regimen.Item{}, regimen.ErrNotFound
		}
		return regimen.Item{}, err
	}
	return it, nil
}

// ListByPatient: created_at DESC y seq DESC para empates (último insertado primero).
func (r *RegimenRepo) ListByPatient(ctx context.Context, userID, patientID string, f regimen.ListFilter) ([]regimen.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+regimenColumns+`
		FROM regimen_items
		WHERE user_id = $1
		  AND patient_id = $2
		  AND (NOT $3::boolean OR is_active = TRUE)
		ORDER BY created_at DESC, seq DESC
	`, userID, patientID, f.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]regimen.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *RegimenRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM regimen_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return regimen.ErrNotFound
	}
	return nil
}

func (r *RegimenRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM regimen_items WHERE patient_id = $1`, patientID)
	return err
}

func scanItem(s rowScanner) (regimen.Item, error) {
	var it regimen.Item
	var category string
	var start, end sql.NullTime
	if err := s.Scan(
		&it.ID,
		&it.UserID,
		&it.PatientID,
		&it.Name,
		&category,
		&it.Dosage,
		&it.Frequency,
		&start,
		&end,
		&it.Source,
		&it.Notes,
		&it.IsActive,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		return regimen.Item{}, err
	}
	it.Category = regimen.Category(category)
	it.StartDate = fromNullDate(start)
	it.EndDate = fromNullDate(end)
	return it, nil
}

// start_date/end_date son DATE; pgx los mapea a time.Time a medianoche UTC.
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullDate(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}
