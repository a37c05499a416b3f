package regimen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"regimen-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// PatientOwnerLookup evita importar el paquete patients (rompe ciclos).
type PatientOwnerLookup interface {
	OwnerOf(ctx context.Context, patientID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, owners PatientOwnerLookup) {
	r.Route("/patients/{patientID}/regimen", func(rr chi.Router) {
		rr.Post("/", createItemHandler(svc, owners))
		rr.Get("/", listItemsHandler(svc, owners))

		rr.Get("/{itemID}", getItemHandler(svc, owners))
		rr.Patch("/{itemID}", updateItemHandler(svc, owners))
		rr.Delete("/{itemID}", deleteItemHandler(svc, owners))
	})
}

// createItemRequest es el cuerpo para agregar un item al régimen.
type createItemRequest struct {
	Name      string   `json:"name"`
	Category  Category `json:"category" enums:"medication,supplement,therapy,other"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"`
	StartDate string   `json:"start_date"` // YYYY-MM-DD opcional
	EndDate   string   `json:"end_date"`   // YYYY-MM-DD opcional
	Source    string   `json:"source"`
	Notes     string   `json:"notes"`
	IsActive  *bool    `json:"is_active"` // default true
}

// itemResponse representa un item del régimen devuelto por la API.
type itemResponse struct {
	ID        string     `json:"id"`
	PatientID string     `json:"patient_id"`
	Name      string     `json:"name"`
	Category  Category   `json:"category"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Source    string     `json:"source"`
	Notes     string     `json:"notes"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// createItemHandler godoc
// @Summary Agregar item al régimen
// @Description Agrega una medicación, suplemento o terapia al régimen del paciente. Solo el dueño del paciente. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags regimen
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param payload body createItemRequest true "Datos del item; fechas en formato YYYY-MM-DD"
// @Success 201 {object} itemResponse
// @Failure 400 {string} string "invalid json / fechas inválidas / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/regimen [post]
func createItemHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		var req createItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := parseOptionalDate(req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		it, err := svc.Create(r.Context(), userID, patientID, CreateInput{
			Name:      req.Name,
			Category:  req.Category,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			StartDate: start,
			EndDate:   end,
			Source:    req.Source,
			Notes:     req.Notes,
			IsActive:  req.IsActive,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toItemResponse(it))
	}
}

// listItemsHandler godoc
// @Summary Listar régimen del paciente
// @Description Lista los items del régimen, más recientes primero. Con `active=true` devuelve solo los activos.
// @Tags regimen
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param active query bool false "Solo items activos"
// @Success 200 {array} itemResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID}/regimen [get]
func listItemsHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		activeOnly := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("active")), "true")

		items, err := svc.List(r.Context(), userID, patientID, activeOnly)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]itemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toItemResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getItemHandler godoc
// @Summary Obtener item del régimen
// @Tags regimen
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param itemID path string true "ID del item"
// @Success 200 {object} itemResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "regimen item not found"
// @Router /patients/{patientID}/regimen/{itemID} [get]
func getItemHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		it, err := svc.GetByID(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil || it.PatientID != patientID {
			http.Error(w, "regimen item not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

// updateItemHandler godoc
// @Summary Actualizar item del régimen
// @Description PATCH parcial. `start_date`/`end_date` aceptan null para limpiar. `is_active=false` excluye el item del chequeo de interacciones.
// @Tags regimen
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param itemID path string true "ID del item"
// @Success 200 {object} itemResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "regimen item not found"
// @Router /patients/{patientID}/regimen/{itemID} [patch]
func updateItemHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		itemID := chi.URLParam(r, "itemID")
		current, err := svc.GetByID(r.Context(), itemID)
		if err != nil || current.PatientID != patientID {
			http.Error(w, "regimen item not found", http.StatusNotFound)
			return
		}

		// Decodificar a map primero para detectar presencia de start_date/end_date (null = limpiar).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req struct {
			Name      *string   `json:"name"`
			Category  *Category `json:"category"`
			Dosage    *string   `json:"dosage"`
			Frequency *string   `json:"frequency"`
			Source    *string   `json:"source"`
			Notes     *string   `json:"notes"`
			IsActive  *bool     `json:"is_active"`
		}
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := patchDateField(raw, "start_date")
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD or null", http.StatusBadRequest)
			return
		}
		end, err := patchDateField(raw, "end_date")
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD or null", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), itemID, userID, UpdateInput{
			Name:      req.Name,
			Category:  req.Category,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			StartDate: start,
			EndDate:   end,
			Source:    req.Source,
			Notes:     req.Notes,
			IsActive:  req.IsActive,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "regimen item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toItemResponse(updated))
	}
}

// deleteItemHandler godoc
// @Summary Eliminar item del régimen
// @Tags regimen
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param itemID path string true "ID del item"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "regimen item not found"
// @Router /patients/{patientID}/regimen/{itemID} [delete]
func deleteItemHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		itemID := chi.URLParam(r, "itemID")
		current, err := svc.GetByID(r.Context(), itemID)
		if err != nil || current.PatientID != patientID {
			http.Error(w, "regimen item not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), itemID, userID); err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "regimen item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// authorizePatient valida claims + que el paciente exista y sea del usuario.
// Escribe la respuesta de error y devuelve ok=false si no corresponde seguir.
func authorizePatient(w http.ResponseWriter, r *http.Request, owners PatientOwnerLookup) (string, string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	patientID := chi.URLParam(r, "patientID")
	ownerID, err := owners.OwnerOf(r.Context(), patientID)
	if err != nil || strings.TrimSpace(ownerID) == "" {
		http.Error(w, "patient not found", http.StatusNotFound)
		return "", "", false
	}
	if ownerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", "", false
	}
	return claims.UserID, patientID, true
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func patchDateField(raw map[string]json.RawMessage, key string) (PatchDate, error) {
	v, exists := raw[key]
	if !exists {
		return PatchDate{}, nil
	}
	if string(v) == "null" {
		return PatchDate{Present: true}, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return PatchDate{}, err
	}
	t, err := parseOptionalDate(s)
	if err != nil {
		return PatchDate{}, err
	}
	return PatchDate{Present: true, Value: t}, nil
}

func toItemResponse(it Item) itemResponse {
	return itemResponse{
		ID:        it.ID,
		PatientID: it.PatientID,
		Name:      it.Name,
		Category:  it.Category,
		Dosage:    it.Dosage,
		Frequency: it.Frequency,
		StartDate: it.StartDate,
		EndDate:   it.EndDate,
		Source:    it.Source,
		Notes:     it.Notes,
		IsActive:  it.IsActive,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
