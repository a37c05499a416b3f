package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"regimen-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))

		pr.Get("/{patientID}", getPatientHandler(svc))
		pr.Patch("/{patientID}", updatePatientHandler(svc))
		pr.Delete("/{patientID}", deletePatientHandler(svc))
	})
}

type careTeamMemberDTO struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Contact string `json:"contact"`
}

// createPatientRequest es el cuerpo para registrar un paciente.
type createPatientRequest struct {
	Name          string              `json:"name"`
	Relationship  string              `json:"relationship"`
	Diagnosis     string              `json:"diagnosis"`
	DiagnosisTags []string            `json:"diagnosis_tags"`
	Notes         string              `json:"notes"`
	CareTeam      []careTeamMemberDTO `json:"care_team"`
}

// updatePatientRequest documenta el PATCH; `diagnosis_tags`/`care_team` en null limpian la lista.
type updatePatientRequest struct {
	Name          *string              `json:"name"`
	Relationship  *string              `json:"relationship"`
	Diagnosis     *string              `json:"diagnosis"`
	DiagnosisTags *[]string            `json:"diagnosis_tags"`
	Notes         *string              `json:"notes"`
	CareTeam      *[]careTeamMemberDTO `json:"care_team"`
}

// patientResponse representa un paciente devuelto por la API.
type patientResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Name          string              `json:"name"`
	Relationship  string              `json:"relationship"`
	Diagnosis     string              `json:"diagnosis"`
	DiagnosisTags []string            `json:"diagnosis_tags"`
	Notes         string              `json:"notes"`
	CareTeam      []careTeamMemberDTO `json:"care_team"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// createPatientHandler godoc
// @Summary Registrar paciente
// @Description Crea un paciente a nombre del usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags patients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPatientRequest true "Datos del paciente"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /patients [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:          req.Name,
			Relationship:  req.Relationship,
			Diagnosis:     req.Diagnosis,
			DiagnosisTags: req.DiagnosisTags,
			Notes:         req.Notes,
			CareTeam:      fromCareTeamDTO(req.CareTeam),
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// listPatientsHandler godoc
// @Summary Listar mis pacientes
// @Description Pacientes del usuario autenticado, más recientes primero.
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(list))
		for _, p := range list {
			out = append(out, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPatientHandler godoc
// @Summary Obtener paciente
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		if p.UserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

// updatePatientHandler godoc
// @Summary Actualizar paciente
// @Description PATCH parcial. Campos ausentes no se tocan.
// @Tags patients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param payload body updatePatientRequest true "Campos a actualizar"
// @Success 200 {object} patientResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [patch]
func updatePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		var req updatePatientRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:         req.Name,
			Relationship: req.Relationship,
			Diagnosis:    req.Diagnosis,
			Notes:        req.Notes,
		}
		// Presente con null => limpiar.
		if _, exists := raw["diagnosis_tags"]; exists {
			in.DiagnosisTags = []string{}
			if req.DiagnosisTags != nil {
				in.DiagnosisTags = append(in.DiagnosisTags, *req.DiagnosisTags...)
			}
		}
		if _, exists := raw["care_team"]; exists {
			in.CareTeam = []CareTeamMember{}
			if req.CareTeam != nil {
				in.CareTeam = append(in.CareTeam, fromCareTeamDTO(*req.CareTeam)...)
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "patientID"), claims.UserID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "patient not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(updated))
	}
}

// deletePatientHandler godoc
// @Summary Eliminar paciente
// @Description Borra el paciente junto con su régimen e interacciones guardadas.
// @Tags patients
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [delete]
func deletePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "patientID"), claims.UserID); err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
				http.Error(w, "patient not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func fromCareTeamDTO(in []careTeamMemberDTO) []CareTeamMember {
	out := make([]CareTeamMember, 0, len(in))
	for _, m := range in {
		out = append(out, CareTeamMember{Name: m.Name, Role: m.Role, Contact: m.Contact})
	}
	return out
}

func toPatientResponse(p Patient) patientResponse {
	tags := p.DiagnosisTags
	if tags == nil {
		tags = []string{}
	}
	team := make([]careTeamMemberDTO, 0, len(p.CareTeam))
	for _, m := range p.CareTeam {
		team = append(team, careTeamMemberDTO{Name: m.Name, Role: m.Role, Contact: m.Contact})
	}
	return patientResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		Relationship:  p.Relationship,
		Diagnosis:     p.Diagnosis,
		DiagnosisTags: tags,
		Notes:         p.Notes,
		CareTeam:      team,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
