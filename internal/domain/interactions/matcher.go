package interactions

import (
	"strings"

	"regimen-tracker/internal/domain/regimen"
)

// Matcher es puro y sin estado mutable: se puede usar concurrentemente.
type Matcher struct {
	rules RuleTable
}

func NewMatcher(rules RuleTable) *Matcher {
	return &Matcher{rules: rules}
}

func (m *Matcher) Rules() RuleTable { return m.rules }

// Check evalúa todos los pares (i, j) con i < j en el orden recibido.
// El caller pasa solo items activos; acá no se filtra.
// Por par se reporta solo la primera regla que matchea (orden de la tabla).
// Nunca devuelve nil.
func (m *Matcher) Check(items []regimen.Item) []DetectedInteraction {
	out := make([]DetectedInteraction, 0)
	if len(items) < 2 {
		return out
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = normalizeName(it.Name)
	}

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			r, ok := m.matchNormalized(items[i], items[j], names[i], names[j])
			if !ok {
				continue
			}
			out = append(out, DetectedInteraction{
				ItemIDs:     [2]string{items[i].ID, items[j].ID},
				Items:       [2]regimen.Item{items[i], items[j]},
				Severity:    r.Severity,
				Description: r.Description,
				Sources:     copySources(r.Sources),
			})
		}
	}
	return out
}

// MatchPair devuelve la primera regla que aplica al par, si hay alguna.
func (m *Matcher) MatchPair(a, b regimen.Item) (Rule, bool) {
	r, ok := m.matchNormalized(a, b, normalizeName(a.Name), normalizeName(b.Name))
	if !ok {
		return Rule{}, false
	}
	r.Sources = copySources(r.Sources)
	return r, true
}

// matchNormalized: nombres vacíos nunca matchean; nombres iguales (tras normalizar) tampoco,
// ni un item consigo mismo (mismo ID).
func (m *Matcher) matchNormalized(a, b regimen.Item, nameA, nameB string) (Rule, bool) {
	if nameA == "" || nameB == "" || nameA == nameB {
		return Rule{}, false
	}
	if a.ID != "" && a.ID == b.ID {
		return Rule{}, false
	}

	for _, c := range m.rules.rules {
		t1, t2 := c.terms[0], c.terms[1]
		forward := strings.Contains(nameA, t1) && strings.Contains(nameB, t2)
		reverse := strings.Contains(nameA, t2) && strings.Contains(nameB, t1)
		if forward || reverse {
			return c.rule, true
		}
	}
	return Rule{}, false
}
