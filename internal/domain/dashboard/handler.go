package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"

	"regimen-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/dashboard", dashboardHandler(svc))
}

// summaryResponse es el resumen del dashboard del usuario.
type summaryResponse struct {
	Patients       int            `json:"patients"`
	ActiveRegimens int            `json:"active_regimens"`
	Interactions   int            `json:"interactions"`
	BySeverity     map[string]int `json:"by_severity"`
	Failed         int            `json:"failed"`
}

// dashboardHandler godoc
// @Summary Resumen del usuario
// @Description Cantidad de pacientes, items activos e interacciones detectadas (por severidad). Los pacientes cuyo chequeo falla se cuentan en `failed`.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} summaryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sum, err := svc.Summarize(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		by := make(map[string]int, len(sum.BySeverity))
		for sev, n := range sum.BySeverity {
			by[string(sev)] = n
		}
		writeJSON(w, http.StatusOK, summaryResponse{
			Patients:       sum.Patients,
			ActiveRegimens: sum.ActiveRegimens,
			Interactions:   sum.Interactions,
			BySeverity:     by,
			Failed:         sum.Failed,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
