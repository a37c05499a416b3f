package router

import (
	"database/sql"
	"net/http"

	_ "regimen-tracker/docs"
	mem "regimen-tracker/internal/adapters/storage/memory"
	pg "regimen-tracker/internal/adapters/storage/postgres"
	"regimen-tracker/internal/domain/dashboard"
	"regimen-tracker/internal/domain/interactions"
	"regimen-tracker/internal/domain/patients"
	"regimen-tracker/internal/domain/regimen"
	"regimen-tracker/internal/middleware"
	"regimen-tracker/internal/platform/logger"
	"regimen-tracker/internal/platform/metrics"
	"regimen-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Matcher con la tabla de reglas cargada al arranque. nil => reglas por defecto.
	Matcher *interactions.Matcher

	// RateLimiter opcional (nil => sin límite).
	RateLimiter *middleware.RateLimiter

	// MaxRequestBody en bytes. <=0 => sin límite.
	MaxRequestBody int64

	// Services ya construidos (cmd/api los comparte con el scheduler). nil => NewServices.
	Services *Services
}

// Services agrupa los servicios por módulo, cableados entre sí.
type Services struct {
	Patients     *patients.Service
	Regimen      *regimen.Service
	Interactions *interactions.Service
	Dashboard    *dashboard.Service
}

// NewServices arma repos (Postgres si db != nil, si no in-memory) y servicios.
func NewServices(db *sql.DB, matcher *interactions.Matcher, log logger.Logger) *Services {
	if log == nil {
		log = logger.Nop()
	}

	var (
		patientRepo     patients.Repository
		regimenRepo     regimen.Repository
		interactionRepo interactions.Repository
	)
	if db != nil {
		patientRepo = pg.NewPatientsRepo(db)
		regimenRepo = pg.NewRegimenRepo(db)
		interactionRepo = pg.NewInteractionsRepo(db)
	} else {
		patientRepo = mem.NewPatientRepo()
		regimenRepo = mem.NewRegimenRepo()
		interactionRepo = mem.NewInteractionRepo()
	}

	regimenSvc := regimen.NewService(regimenRepo)
	interactionsSvc := interactions.NewService(regimenSvc, matcher, interactionRepo, log)
	// Borrar un paciente arrastra su régimen y sus interacciones guardadas.
	patientsSvc := patients.NewService(patientRepo, interactionsSvc, regimenSvc)
	dashboardSvc := dashboard.NewService(patientsSvc, regimenSvc, interactionsSvc.Matcher(), log)

	return &Services{
		Patients:     patientsSvc,
		Regimen:      regimenSvc,
		Interactions: interactionsSvc,
		Dashboard:    dashboardSvc,
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Metrics)
	r.Use(middleware.RequestLogger(log.Slog()))
	if opts.MaxRequestBody > 0 {
		r.Use(middleware.BodyLimit(opts.MaxRequestBody))
	}
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	svcs := opts.Services
	if svcs == nil {
		svcs = NewServices(opts.DB, opts.Matcher, log)
	}

	// Rutas por módulo
	patients.RegisterRoutes(r, svcs.Patients)
	regimen.RegisterRoutes(r, svcs.Regimen, svcs.Patients)
	interactions.RegisterRoutes(r, svcs.Interactions, svcs.Patients)
	dashboard.RegisterRoutes(r, svcs.Dashboard)

	return r
}
