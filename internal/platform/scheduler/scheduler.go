// Package scheduler corre el barrido periódico de interacciones sobre todos los pacientes
// y publica el resultado como métricas.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"regimen-tracker/internal/domain/dashboard"
	"regimen-tracker/internal/platform/logger"
	"regimen-tracker/internal/platform/metrics"

	"github.com/go-co-op/gocron"
)

const defaultRunTimeout = 5 * time.Minute

// Summarizer agrega el estado de todos los pacientes (dashboard.Service).
type Summarizer interface {
	SummarizeAll(ctx context.Context) (dashboard.Summary, error)
}

type Scheduler struct {
	summarizer Summarizer
	interval   time.Duration
	log        logger.Logger
	scheduler  *gocron.Scheduler

	// RunTimeout acota cada barrido.
	RunTimeout time.Duration
}

func New(summarizer Summarizer, interval time.Duration, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		summarizer: summarizer,
		interval:   interval,
		log:        log.With(map[string]any{"component": "interaction_sweep"}),
		scheduler:  gocron.NewScheduler(time.Local),
		RunTimeout: defaultRunTimeout,
	}
}

// Start agenda el barrido. Con intervalo <= 0 no agenda nada.
func (s *Scheduler) Start() error {
	if s.summarizer == nil {
		return errors.New("scheduler: nil summarizer")
	}
	if s.interval <= 0 {
		s.log.Info("interaction sweep disabled", nil)
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.RunTimeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("interaction sweep failed", map[string]any{"error": err.Error()})
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule interaction sweep: %w", err)
	}

	s.scheduler.StartAsync()
	s.log.Info("interaction sweep scheduled", map[string]any{"interval": s.interval.String()})
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce ejecuta un barrido y actualiza las métricas interaction_sweep_*.
func (s *Scheduler) RunOnce(ctx context.Context) (dashboard.Summary, error) {
	start := time.Now()
	sum, err := s.summarizer.SummarizeAll(ctx)
	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("summarize all: %w", err)
	}

	metrics.SweepPatients.Set(float64(sum.Patients))
	metrics.SweepFailed.Set(float64(sum.Failed))
	for sev, n := range sum.BySeverity {
		metrics.SweepDetected.WithLabelValues(string(sev)).Set(float64(n))
	}

	s.log.Info("interaction sweep completed", map[string]any{
		"patients":        sum.Patients,
		"active_regimens": sum.ActiveRegimens,
		"interactions":    sum.Interactions,
		"failed":          sum.Failed,
		"duration_ms":     time.Since(start).Milliseconds(),
	})
	return sum, nil
}
