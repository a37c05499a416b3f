package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"regimen-tracker/internal/domain/regimen"
	"regimen-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type PatientOwnerLookup interface {
	OwnerOf(ctx context.Context, patientID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, owners PatientOwnerLookup) {
	r.Get("/severity-display", severityDisplayHandler())

	r.Route("/patients/{patientID}/interactions", func(rr chi.Router) {
		rr.Get("/check", checkHandler(svc, owners))

		rr.Post("/", saveHandler(svc, owners))
		rr.Get("/", listHandler(svc, owners))
		rr.Patch("/{interactionID}", updateHandler(svc, owners))
		rr.Delete("/{interactionID}", deleteHandler(svc, owners))
	})
}

// resultResponse es el sobre {success, data?, error?} de los endpoints de chequeo.
type resultResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type sourceResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// itemSummary es la vista reducida de un item del régimen dentro de una interacción.
type itemSummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Category  regimen.Category `json:"category"`
	Dosage    string           `json:"dosage"`
	Frequency string           `json:"frequency"`
	IsActive  bool             `json:"is_active"`
}

// detectedResponse representa una interacción detectada (no persistida).
type detectedResponse struct {
	ItemIDs     [2]string        `json:"item_ids"`
	Items       [2]itemSummary   `json:"items"`
	Severity    Severity         `json:"severity" enums:"high,moderate,low"`
	Description string           `json:"description"`
	Sources     []sourceResponse `json:"sources"`
}

// interactionResponse representa una interacción guardada.
type interactionResponse struct {
	ID                     string           `json:"id"`
	PatientID              string           `json:"patient_id"`
	ItemIDs                [2]string        `json:"item_ids"`
	Severity               Severity         `json:"severity" enums:"high,moderate,low,unknown"`
	Description            string           `json:"description"`
	Sources                []sourceResponse `json:"sources"`
	DiscussedWithClinician bool             `json:"discussed_with_clinician"`
	DiscussionNotes        string           `json:"discussion_notes"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

type severityDisplayResponse struct {
	Severity    Severity `json:"severity"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	BgColor     string   `json:"bg_color"`
	BorderColor string   `json:"border_color"`
	Description string   `json:"description"`
}

// saveInteractionRequest identifica el par de items a guardar.
type saveInteractionRequest struct {
	ItemIDs [2]string `json:"item_ids"`
}

type updateInteractionRequest struct {
	DiscussedWithClinician *bool   `json:"discussed_with_clinician"`
	DiscussionNotes        *string `json:"discussion_notes"`
}

// severityDisplayHandler godoc
// @Summary Display de severidad
// @Description Label, tokens de estilo y guía para una severidad. Valores desconocidos devuelven el display "unknown". No requiere auth.
// @Tags interactions
// @Produce json
// @Param severity query string false "high|moderate|low|unknown"
// @Success 200 {object} severityDisplayResponse
// @Router /severity-display [get]
func severityDisplayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := GetSeverityDisplay(r.URL.Query().Get("severity"))
		writeJSON(w, http.StatusOK, severityDisplayResponse{
			Severity:    d.Severity,
			Label:       d.Label,
			Color:       d.Color,
			BgColor:     d.BgColor,
			BorderColor: d.BorderColor,
			Description: d.Description,
		})
	}
}

// checkHandler godoc
// @Summary Chequear interacciones del paciente
// @Description Evalúa todos los pares de items activos contra la tabla de reglas. Sin interacciones => `success=true` con `data=[]`. Si falla la lectura del régimen => `success=false` con el error.
// @Tags interactions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} resultResponse{data=[]detectedResponse}
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Failure 500 {object} resultResponse
// @Router /patients/{patientID}/interactions/check [get]
func checkHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		res := svc.CheckForPatient(r.Context(), userID, patientID)
		if !res.Success {
			writeJSON(w, http.StatusInternalServerError, resultResponse{Success: false, Error: res.Error})
			return
		}

		out := make([]detectedResponse, 0, len(res.Data))
		for _, d := range res.Data {
			out = append(out, toDetectedResponse(d))
		}
		writeJSON(w, http.StatusOK, resultResponse{Success: true, Data: out})
	}
}

// saveHandler godoc
// @Summary Guardar interacción detectada
// @Description Reevalúa el par de items activos y guarda la interacción con la regla que matchea.
// @Tags interactions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param payload body saveInteractionRequest true "Par de items"
// @Success 201 {object} resultResponse{data=interactionResponse}
// @Failure 400 {object} resultResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Failure 422 {object} resultResponse
// @Failure 500 {object} resultResponse
// @Router /patients/{patientID}/interactions [post]
func saveHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		var req saveInteractionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, resultResponse{Error: "invalid json"})
			return
		}

		in, err := svc.SaveDetected(r.Context(), userID, patientID, req.ItemIDs)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, ErrInvalidInput):
				status = http.StatusBadRequest
			case errors.Is(err, ErrItemNotActive), errors.Is(err, ErrNoInteraction):
				status = http.StatusUnprocessableEntity
			}
			writeJSON(w, status, resultResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusCreated, resultResponse{Success: true, Data: toInteractionResponse(in)})
	}
}

// listHandler godoc
// @Summary Listar interacciones guardadas
// @Tags interactions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {array} interactionResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID}/interactions [get]
func listHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		list, err := svc.List(r.Context(), userID, patientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]interactionResponse, 0, len(list))
		for _, in := range list {
			out = append(out, toInteractionResponse(in))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateHandler godoc
// @Summary Marcar interacción como conversada
// @Description PATCH de `discussed_with_clinician` y `discussion_notes`.
// @Tags interactions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param interactionID path string true "ID de la interacción"
// @Param payload body updateInteractionRequest true "Campos a actualizar"
// @Success 200 {object} interactionResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "interaction not found"
// @Router /patients/{patientID}/interactions/{interactionID} [patch]
func updateHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		id := chi.URLParam(r, "interactionID")
		current, err := svc.GetByID(r.Context(), id)
		if err != nil || current.PatientID != patientID {
			http.Error(w, "interaction not found", http.StatusNotFound)
			return
		}

		var req updateInteractionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), id, userID, UpdateInput{
			DiscussedWithClinician: req.DiscussedWithClinician,
			DiscussionNotes:        req.DiscussionNotes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "interaction not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toInteractionResponse(updated))
	}
}

// deleteHandler godoc
// @Summary Eliminar interacción guardada
// @Tags interactions
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param interactionID path string true "ID de la interacción"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "interaction not found"
// @Router /patients/{patientID}/interactions/{interactionID} [delete]
func deleteHandler(svc *Service, owners PatientOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, patientID, ok := authorizePatient(w, r, owners)
		if !ok {
			return
		}

		id := chi.URLParam(r, "interactionID")
		current, err := svc.GetByID(r.Context(), id)
		if err != nil || current.PatientID != patientID {
			http.Error(w, "interaction not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), id, userID); err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "interaction not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

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

func toSourceResponses(in []Source) []sourceResponse {
	out := make([]sourceResponse, 0, len(in))
	for _, s := range in {
		out = append(out, sourceResponse{Title: s.Title, URL: s.URL})
	}
	return out
}

func toItemSummary(it regimen.Item) itemSummary {
	return itemSummary{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Dosage:    it.Dosage,
		Frequency: it.Frequency,
		IsActive:  it.IsActive,
	}
}

func toDetectedResponse(d DetectedInteraction) detectedResponse {
	return detectedResponse{
		ItemIDs:     d.ItemIDs,
		Items:       [2]itemSummary{toItemSummary(d.Items[0]), toItemSummary(d.Items[1])},
		Severity:    d.Severity,
		Description: d.Description,
		Sources:     toSourceResponses(d.Sources),
	}
}

func toInteractionResponse(in Interaction) interactionResponse {
	return interactionResponse{
		ID:                     in.ID,
		PatientID:              in.PatientID,
		ItemIDs:                in.ItemIDs,
		Severity:               in.Severity,
		Description:            in.Description,
		Sources:                toSourceResponses(in.Sources),
		DiscussedWithClinician: in.DiscussedWithClinician,
		DiscussionNotes:        in.DiscussionNotes,
		CreatedAt:              in.CreatedAt,
		UpdatedAt:              in.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
