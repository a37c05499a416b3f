package patients

import "time"

// CareTeamMember es un profesional del equipo de cuidado del paciente.
type CareTeamMember struct {
	Name    string
	Role    string // oncologist, nurse, pharmacist...
	Contact string
}

// Patient es la persona cuyo régimen se sigue. El UserID es el cuidador/dueño de la cuenta.
type Patient struct {
	ID     string
	UserID string

	Name          string
	Relationship  string // self, mother, spouse...
	Diagnosis     string
	DiagnosisTags []string

	Notes    string
	CareTeam []CareTeamMember

	CreatedAt time.Time
	UpdatedAt time.Time
}
