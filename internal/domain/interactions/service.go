package interactions

import (
	"context"
	"errors"
	"strings"
	"time"

	"regimen-tracker/internal/domain/regimen"
	"regimen-tracker/internal/platform/logger"
	"regimen-tracker/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("interaction not found")
	ErrForbidden     = errors.New("forbidden")
	ErrItemNotActive = errors.New("regimen item not active")
	ErrNoInteraction = errors.New("items do not interact")
)

// RegimenStore entrega los items activos de un paciente en su orden natural.
// Lo implementa regimen.Service.
type RegimenStore interface {
	ListActive(ctx context.Context, userID, patientID string) ([]regimen.Item, error)
}

type Service struct {
	store   RegimenStore
	matcher *Matcher
	repo    Repository
	log     logger.Logger
	now     func() time.Time
}

func NewService(store RegimenStore, matcher *Matcher, repo Repository, log logger.Logger) *Service {
	if matcher == nil {
		matcher = NewMatcher(DefaultRules())
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:   store,
		matcher: matcher,
		repo:    repo,
		log:     log.With(map[string]any{"component": "interactions"}),
		now:     time.Now,
	}
}

func (s *Service) Matcher() *Matcher { return s.matcher }

// CheckForPatient trae los items activos y recién después corre el matcher.
// Un error del store se devuelve tal cual en el Result, sin reintentos.
func (s *Service) CheckForPatient(ctx context.Context, userID, patientID string) Result[[]DetectedInteraction] {
	items, err := s.store.ListActive(ctx, userID, patientID)
	if err != nil {
		metrics.InteractionChecks.WithLabelValues("failure").Inc()
		s.log.Warn("interaction check failed", map[string]any{
			"user_id":    userID,
			"patient_id": patientID,
			"error":      err.Error(),
		})
		return Fail[[]DetectedInteraction](err)
	}

	found := s.matcher.Check(items)

	metrics.InteractionChecks.WithLabelValues("success").Inc()
	for _, d := range found {
		metrics.InteractionsDetected.WithLabelValues(string(d.Severity)).Inc()
	}
	s.log.Debug("interaction check", map[string]any{
		"patient_id": patientID,
		"items":      len(items),
		"detected":   len(found),
	})
	return Ok(found)
}

// Save persiste una interacción detectada. Severidad vacía o desconocida => unknown.
func (s *Service) Save(ctx context.Context, userID, patientID string, d DetectedInteraction) (Interaction, error) {
	userID = strings.TrimSpace(userID)
	patientID = strings.TrimSpace(patientID)
	if userID == "" || patientID == "" {
		return Interaction{}, ErrInvalidInput
	}
	a := strings.TrimSpace(d.ItemIDs[0])
	b := strings.TrimSpace(d.ItemIDs[1])
	if a == "" || b == "" || a == b {
		return Interaction{}, ErrInvalidInput
	}

	now := s.now()
	in := Interaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		PatientID:   patientID,
		ItemIDs:     [2]string{a, b},
		Severity:    ParseSeverity(string(d.Severity)),
		Description: strings.TrimSpace(d.Description),
		Sources:     copySources(d.Sources),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, in); err != nil {
		return Interaction{}, err
	}
	return in, nil
}

// SaveDetected reevalúa el par contra los items activos actuales y guarda la regla que matchea.
// Severidad, descripción y fuentes salen siempre de la tabla de reglas.
func (s *Service) SaveDetected(ctx context.Context, userID, patientID string, itemIDs [2]string) (Interaction, error) {
	a := strings.TrimSpace(itemIDs[0])
	b := strings.TrimSpace(itemIDs[1])
	if a == "" || b == "" || a == b {
		return Interaction{}, ErrInvalidInput
	}

	items, err := s.store.ListActive(ctx, userID, patientID)
	if err != nil {
		return Interaction{}, err
	}

	var itemA, itemB *regimen.Item
	for i := range items {
		switch items[i].ID {
		case a:
			itemA = &items[i]
		case b:
			itemB = &items[i]
		}
	}
	if itemA == nil || itemB == nil {
		return Interaction{}, ErrItemNotActive
	}

	rule, ok := s.matcher.MatchPair(*itemA, *itemB)
	if !ok {
		return Interaction{}, ErrNoInteraction
	}

	return s.Save(ctx, userID, patientID, DetectedInteraction{
		ItemIDs:     [2]string{a, b},
		Items:       [2]regimen.Item{*itemA, *itemB},
		Severity:    rule.Severity,
		Description: rule.Description,
		Sources:     rule.Sources,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Interaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Interaction{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, userID, patientID string) ([]Interaction, error) {
	return s.repo.ListByPatient(ctx, strings.TrimSpace(userID), strings.TrimSpace(patientID))
}

type UpdateInput struct {
	DiscussedWithClinician *bool
	DiscussionNotes        *string
}

func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (Interaction, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Interaction{}, err
	}
	if current.UserID != strings.TrimSpace(userID) {
		return Interaction{}, ErrForbidden
	}

	if in.DiscussedWithClinician != nil {
		current.DiscussedWithClinician = *in.DiscussedWithClinician
	}
	if in.DiscussionNotes != nil {
		current.DiscussionNotes = strings.TrimSpace(*in.DiscussionNotes)
	}

	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return Interaction{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != strings.TrimSpace(userID) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, current.ID)
}

func (s *Service) DeleteByPatient(ctx context.Context, patientID string) error {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByPatient(ctx, patientID)
}
