package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"regimen-tracker/internal/domain/interactions"
	"regimen-tracker/internal/domain/patients"
	"regimen-tracker/internal/domain/regimen"
	"regimen-tracker/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

type PatientSource interface {
	ListByUser(ctx context.Context, userID string) ([]patients.Patient, error)
	ListAll(ctx context.Context) ([]patients.Patient, error)
}

type RegimenStore interface {
	ListActive(ctx context.Context, userID, patientID string) ([]regimen.Item, error)
}

// InteractionMatcher corre las reglas sobre una lista ya leída (interactions.Matcher).
type InteractionMatcher interface {
	Check(items []regimen.Item) []interactions.DetectedInteraction
}

type Service struct {
	patients    PatientSource
	regimen     RegimenStore
	matcher     InteractionMatcher
	log         logger.Logger
	concurrency int
}

func NewService(ps PatientSource, rs RegimenStore, matcher InteractionMatcher, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		patients:    ps,
		regimen:     rs,
		matcher:     matcher,
		log:         log.With(map[string]any{"component": "dashboard"}),
		concurrency: defaultConcurrency,
	}
}

// Summarize arma el resumen de los pacientes del usuario.
func (s *Service) Summarize(ctx context.Context, userID string) (Summary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Summary{}, fmt.Errorf("summarize: empty user id")
	}
	list, err := s.patients.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("list patients: %w", err)
	}
	return s.summarize(ctx, list)
}

// SummarizeAll recorre todos los pacientes del sistema. Lo usa el barrido programado.
func (s *Service) SummarizeAll(ctx context.Context) (Summary, error) {
	list, err := s.patients.ListAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list patients: %w", err)
	}
	return s.summarize(ctx, list)
}

func (s *Service) summarize(ctx context.Context, list []patients.Patient) (Summary, error) {
	sum := newSummary()
	sum.Patients = len(list)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, p := range list {
		g.Go(func() error {
			items, err := s.regimen.ListActive(gctx, p.UserID, p.ID)
			if err != nil {
				s.fail(&mu, &sum, p.ID, err.Error())
				return nil
			}

			// Una sola lectura por paciente: los contadores salen de la misma lista.
			found := s.matcher.Check(items)

			mu.Lock()
			defer mu.Unlock()
			sum.ActiveRegimens += len(items)
			sum.Interactions += len(found)
			for _, d := range found {
				sum.BySeverity[d.Severity]++
			}
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	return sum, nil
}

func (s *Service) fail(mu *sync.Mutex, sum *Summary, patientID, msg string) {
	s.log.Warn("patient skipped in summary", map[string]any{
		"patient_id": patientID,
		"error":      msg,
	})
	mu.Lock()
	sum.Failed++
	mu.Unlock()
}
