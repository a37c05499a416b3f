package patients

import "context"

// OwnerOf expone el userID dueño de un paciente.
// Los módulos regimen e interactions lo consumen vía interfaz, sin importar este paquete.
func (s *Service) OwnerOf(ctx context.Context, patientID string) (string, error) {
	p, err := s.GetByID(ctx, patientID)
	if err != nil {
		return "", err
	}
	return p.UserID, nil
}
