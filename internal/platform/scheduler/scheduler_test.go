package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"regimen-tracker/internal/domain/dashboard"
	"regimen-tracker/internal/domain/interactions"
	"regimen-tracker/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeSummarizer struct {
	sum   dashboard.Summary
	err   error
	calls int
}

func (f *fakeSummarizer) SummarizeAll(ctx context.Context) (dashboard.Summary, error) {
	f.calls++
	return f.sum, f.err
}

func TestRunOnce_PublishesGauges(t *testing.T) {
	f := &fakeSummarizer{sum: dashboard.Summary{
		Patients:     4,
		Interactions: 3,
		Failed:       1,
		BySeverity: map[interactions.Severity]int{
			interactions.SeverityHigh:     2,
			interactions.SeverityModerate: 0,
			interactions.SeverityLow:      1,
		},
	}}
	s := New(f, time.Hour, nil)

	sum, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if sum.Patients != 4 || f.calls != 1 {
		t.Fatalf("unexpected summary %+v (calls=%d)", sum, f.calls)
	}

	if got := testutil.ToFloat64(metrics.SweepPatients); got != 4 {
		t.Fatalf("expected sweep patients 4, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.SweepFailed); got != 1 {
		t.Fatalf("expected sweep failed 1, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.SweepDetected.WithLabelValues("high")); got != 2 {
		t.Fatalf("expected 2 high, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.SweepDetected.WithLabelValues("low")); got != 1 {
		t.Fatalf("expected 1 low, got %v", got)
	}
}

func TestRunOnce_Error(t *testing.T) {
	boom := errors.New("boom")
	s := New(&fakeSummarizer{err: boom}, time.Hour, nil)

	if _, err := s.RunOnce(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestStart_DisabledAndNil(t *testing.T) {
	f := &fakeSummarizer{}
	s := New(f, 0, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("disabled sweep must not fail: %v", err)
	}
	s.Stop()
	if f.calls != 0 {
		t.Fatalf("disabled sweep must not run")
	}

	if err := New(nil, time.Minute, nil).Start(); err == nil {
		t.Fatalf("expected error for nil summarizer")
	}
}
