package dashboard

import "regimen-tracker/internal/domain/interactions"

// Summary agrega el estado de los pacientes de un usuario (o de todos, en el barrido).
// Los pacientes cuyo chequeo falla no suman en ningún contador salvo Failed.
type Summary struct {
	Patients       int
	ActiveRegimens int
	Interactions   int
	BySeverity     map[interactions.Severity]int
	Failed         int
}

func newSummary() Summary {
	return Summary{
		BySeverity: map[interactions.Severity]int{
			interactions.SeverityHigh:     0,
			interactions.SeverityModerate: 0,
			interactions.SeverityLow:      0,
		},
	}
}
