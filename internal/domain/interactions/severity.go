package interactions

import "strings"

// Severity es el nivel de riesgo de una interacción.
// @Enum high, moderate, low, unknown
type Severity string

const (
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
	SeverityUnknown  Severity = "unknown"
)

// ParseSeverity nunca falla: valores desconocidos o vacíos => unknown.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityModerate:
		return SeverityModerate
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityUnknown
	}
}

// Ranked indica si la severidad puede usarse en una regla (unknown es solo de display).
func (s Severity) Ranked() bool {
	return s == SeverityHigh || s == SeverityModerate || s == SeverityLow
}

// SeverityDisplay agrupa label, tokens de estilo (clases de UI) y la guía para el usuario.
type SeverityDisplay struct {
	Severity    Severity
	Label       string
	Color       string
	BgColor     string
	BorderColor string
	Description string
}

var severityDisplays = map[Severity]SeverityDisplay{
	SeverityHigh: {
		Severity:    SeverityHigh,
		Label:       "High Priority",
		Color:       "text-red-700",
		BgColor:     "bg-red-50",
		BorderColor: "border-red-200",
		Description: "Discuss with your healthcare provider immediately",
	},
	SeverityModerate: {
		Severity:    SeverityModerate,
		Label:       "Moderate",
		Color:       "text-yellow-700",
		BgColor:     "bg-yellow-50",
		BorderColor: "border-yellow-200",
		Description: "Mention to your healthcare provider at next visit",
	},
	SeverityLow: {
		Severity:    SeverityLow,
		Label:       "Low",
		Color:       "text-blue-700",
		BgColor:     "bg-blue-50",
		BorderColor: "border-blue-200",
		Description: "Good to be aware of, discuss if convenient",
	},
	SeverityUnknown: {
		Severity:    SeverityUnknown,
		Label:       "Unknown",
		Color:       "text-gray-700",
		BgColor:     "bg-gray-50",
		BorderColor: "border-gray-200",
		Description: "Insufficient data available",
	},
}

// GetSeverityDisplay es total: cualquier valor no reconocido (incluido "") devuelve el display unknown.
func GetSeverityDisplay(severity string) SeverityDisplay {
	return severityDisplays[ParseSeverity(severity)]
}
