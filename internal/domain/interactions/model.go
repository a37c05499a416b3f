package interactions

import (
	"time"

	"regimen-tracker/internal/domain/regimen"
)

// DetectedInteraction es derivada: existe mientras ambos items sigan activos.
// ItemIDs siempre tiene dos IDs distintos, en el orden en que se generó el par.
type DetectedInteraction struct {
	ItemIDs     [2]string
	Items       [2]regimen.Item
	Severity    Severity
	Description string
	Sources     []Source
}

// Interaction es una interacción confirmada y guardada por el usuario.
type Interaction struct {
	ID        string
	UserID    string
	PatientID string

	ItemIDs     [2]string
	Severity    Severity
	Description string
	Sources     []Source

	DiscussedWithClinician bool
	DiscussionNotes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Result es la forma {success, data?, error?} que usan los bordes del sistema.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Fail[T any](err error) Result[T] {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Result[T]{Success: false, Error: msg}
}
