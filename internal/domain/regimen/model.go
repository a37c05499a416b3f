package regimen

import "time"

// Category clasifica un item del régimen.
// @Enum medication, supplement, therapy, other
type Category string

const (
	CategoryMedication Category = "medication"
	CategorySupplement Category = "supplement"
	CategoryTherapy    Category = "therapy"
	CategoryOther      Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMedication, CategorySupplement, CategoryTherapy, CategoryOther:
		return true
	default:
		return false
	}
}

// Item es una entrada del régimen de un paciente (medicación, suplemento, terapia...).
// Solo los items con IsActive participan del chequeo de interacciones.
type Item struct {
	ID        string
	UserID    string
	PatientID string

	Name     string
	Category Category

	Dosage    string // "500mg"
	Frequency string // texto libre: "cada 12h"

	StartDate *time.Time
	EndDate   *time.Time

	Source string // quién lo indicó (médico, farmacia, etc.)
	Notes  string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
