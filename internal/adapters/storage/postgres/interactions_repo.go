package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"regimen-tracker/internal/domain/interactions"
)

type InteractionsRepo struct {
	db *sql.DB
}

func NewInteractionsRepo(db *sql.DB) *InteractionsRepo {
	return &InteractionsRepo{db: db}
}

const interactionColumns = `
	id, user_id, patient_id,
	item_a_id, item_b_id,
	severity, description, sources,
	discussed_with_clinician, discussion_notes,
	created_at, updated_at`

func (r *InteractionsRepo) Create(ctx context.Context, in interactions.Interaction) error {
	sources, err := marshalSources(in.Sources)
	if err != nil {
		return fmt.Errorf("encode sources: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO interactions (`+interactionColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		in.ID,
		in.UserID,
		in.PatientID,
		in.ItemIDs[0],
		in.ItemIDs[1],
		string(in.Severity),
		in.Description,
		string(sources),
		in.DiscussedWithClinician,
		in.DiscussionNotes,
		in.CreatedAt,
		in.UpdatedAt,
	)
	return err
}

// Update solo toca los campos mutables (seguimiento con el clínico).
func (r *InteractionsRepo) Update(ctx context.Context, in interactions.Interaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE interactions
		SET
			discussed_with_clinician = $2,
			discussion_notes = $3,
			updated_at = $4
		WHERE id = $1
	`,
		in.ID,
		in.DiscussedWithClinician,
		in.DiscussionNotes,
		in.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return interactions.ErrNotFound
	}
	return nil
}

func (r *InteractionsRepo) GetByID(ctx context.Context, id string) (interactions.Interaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return interactions.Interaction{}, interactions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+interactionColumns+`
		FROM interactions
		WHERE id = $1
	`, id)

	in, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return interactions.Interaction{}, interactions.ErrNotFound
		}
		return interactions.Interaction{}, err
	}
	return in, nil
}

func (r *InteractionsRepo) ListByPatient(ctx context.Context, userID, patientID string) ([]interactions.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+interactionColumns+`
		FROM interactions
		WHERE user_id = $1 AND patient_id = $2
		ORDER BY created_at DESC, seq DESC
	`, userID, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interactions.Interaction, 0)
	for rows.Next() {
		in, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *InteractionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return interactions.ErrNotFound
	}
	return nil
}

func (r *InteractionsRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE patient_id = $1`, patientID)
	return err
}

func scanInteraction(s rowScanner) (interactions.Interaction, error) {
	var in interactions.Interaction
	var severity string
	var sources []byte
	if err := s.Scan(
		&in.ID,
		&in.UserID,
		&in.PatientID,
		&in.ItemIDs[0],
		&in.ItemIDs[1],
		&severity,
		&in.Description,
		&sources,
		&in.DiscussedWithClinician,
		&in.DiscussionNotes,
		&in.CreatedAt,
		&in.UpdatedAt,
	); err != nil {
		return interactions.Interaction{}, err
	}

	in.Severity = interactions.ParseSeverity(severity)
	var err error
	if in.Sources, err = unmarshalSources(sources); err != nil {
		return interactions.Interaction{}, fmt.Errorf("decode sources: %w", err)
	}
	return in, nil
}
