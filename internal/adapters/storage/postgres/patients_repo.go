package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"regimen-tracker/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

const patientColumns = `
	id, user_id,
	name, relationship, diagnosis, diagnosis_tags,
	notes, care_team,
	created_at, updated_at`

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	tags, err := marshalTags(p.DiagnosisTags)
	if err != nil {
		return fmt.Errorf("encode diagnosis_tags: %w", err)
	}
	team, err := marshalCareTeam(p.CareTeam)
	if err != nil {
		return fmt.Errorf("encode care_team: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO patients (`+patientColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Relationship,
		p.Diagnosis,
		string(tags),
		p.Notes,
		string(team),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) error {
	tags, err := marshalTags(p.DiagnosisTags)
	if err != nil {
		return fmt.Errorf("encode diagnosis_tags: %w", err)
	}
	team, err := marshalCareTeam(p.CareTeam)
	if err != nil {
		return fmt.Errorf("encode care_team: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			name = $2,
			relationship = $3,
			diagnosis = $4,
			diagnosis_tags = $5,
			notes = $6,
			care_team = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Relationship,
		p.Diagnosis,
		string(tags),
		p.Notes,
		string(team),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, patients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1
	`, id)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patients.Patient{}, patients.ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) ListByUser(ctx context.Context, userID string) ([]patients.Patient, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []patients.Patient{}, nil
	}
	return r.query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
	`, userID)
}

func (r *PatientsRepo) ListAll(ctx context.Context) ([]patients.Patient, error) {
	return r.query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY created_at DESC, seq DESC
	`)
}

// Delete borra solo el paciente; régimen e interacciones los borra el service
// (y además ON DELETE CASCADE en el schema).
func (r *PatientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) query(ctx context.Context, q string, args ...any) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(s rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var tags, team []byte
	if err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Relationship,
		&p.Diagnosis,
		&tags,
		&p.Notes,
		&team,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return patients.Patient{}, err
	}

	var err error
	if p.DiagnosisTags, err = unmarshalTags(tags); err != nil {
		return patients.Patient{}, fmt.Errorf("decode diagnosis_tags: %w", err)
	}
	if p.CareTeam, err = unmarshalCareTeam(team); err != nil {
		return patients.Patient{}, fmt.Errorf("decode care_team: %w", err)
	}
	return p, nil
}
