package interactions

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRule = errors.New("invalid interaction rule")

// Source es una referencia bibliográfica que respalda una regla.
type Source struct {
	Title string
	URL   string
}

// Rule es un patrón de dos términos: un item debe contener uno y el otro item el otro.
type Rule struct {
	Terms       [2]string
	Severity    Severity
	Description string
	Sources     []Source
}

// RuleTable es inmutable una vez construida. El orden importa: la primera regla que matchea gana.
// El zero value es una tabla vacía (nunca matchea).
type RuleTable struct {
	rules []compiledRule
}

type compiledRule struct {
	rule  Rule
	terms [2]string // normalizados
}

// NewRuleTable valida y copia las reglas. Cada regla necesita dos términos distintos,
// severidad high|moderate|low y descripción.
func NewRuleTable(rules []Rule) (RuleTable, error) {
	out := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		t1 := normalizeName(r.Terms[0])
		t2 := normalizeName(r.Terms[1])
		if t1 == "" || t2 == "" {
			return RuleTable{}, fmt.Errorf("%w: rule %d: both terms are required", ErrInvalidRule, i)
		}
		if t1 == t2 {
			return RuleTable{}, fmt.Errorf("%w: rule %d: terms must differ", ErrInvalidRule, i)
		}
		if !r.Severity.Ranked() {
			return RuleTable{}, fmt.Errorf("%w: rule %d: severity %q", ErrInvalidRule, i, r.Severity)
		}
		if strings.TrimSpace(r.Description) == "" {
			return RuleTable{}, fmt.Errorf("%w: rule %d: description is required", ErrInvalidRule, i)
		}

		out = append(out, compiledRule{
			rule: Rule{
				Terms:       [2]string{strings.ToLower(strings.TrimSpace(r.Terms[0])), strings.ToLower(strings.TrimSpace(r.Terms[1]))},
				Severity:    r.Severity,
				Description: strings.TrimSpace(r.Description),
				Sources:     copySources(r.Sources),
			},
			terms: [2]string{t1, t2},
		})
	}
	return RuleTable{rules: out}, nil
}

// MustRuleTable es para tablas fijas en código.
func MustRuleTable(rules []Rule) RuleTable {
	t, err := NewRuleTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

func (t RuleTable) Len() int { return len(t.rules) }

// Rules devuelve una copia en orden.
func (t RuleTable) Rules() []Rule {
	out := make([]Rule, 0, len(t.rules))
	for _, c := range t.rules {
		r := c.rule
		r.Sources = copySources(r.Sources)
		out = append(out, r)
	}
	return out
}

func copySources(in []Source) []Source {
	if len(in) == 0 {
		return []Source{}
	}
	out := make([]Source, len(in))
	copy(out, in)
	return out
}

// DefaultRules es la base de conocimiento local (ejemplos educativos, no consejo médico).
func DefaultRules() RuleTable {
	return MustRuleTable(defaultRules)
}

var defaultRules = []Rule{
	{
		Terms:       [2]string{"warfarin", "vitamin k"},
		Severity:    SeverityHigh,
		Description: "Vitamin K can reduce the effectiveness of warfarin (blood thinner). Consistent intake is important.",
		Sources: []Source{
			{Title: "Warfarin and Vitamin K Interaction", URL: "https://www.drugs.com/drug-interactions/vitamin-k-with-warfarin-2066-0-2318-0.html"},
		},
	},
	{
		Terms:       [2]string{"warfarin", "vitamin e"},
		Severity:    SeverityModerate,
		Description: "High doses of Vitamin E may increase bleeding risk when taken with warfarin.",
		Sources: []Source{
			{Title: "Warfarin Interactions", URL: "https://www.drugs.com/drug-interactions/warfarin.html"},
		},
	},
	{
		Terms:       [2]string{"calcium", "iron"},
		Severity:    SeverityLow,
		Description: "Calcium can reduce iron absorption. Take these supplements at different times of day.",
		Sources: []Source{
			{Title: "Calcium-Iron Interaction", URL: "https://ods.od.nih.gov/factsheets/Iron-HealthProfessional/"},
		},
	},
	{
		Terms:       [2]string{"tamoxifen", "st john"},
		Severity:    SeverityHigh,
		Description: "St. John's Wort significantly reduces Tamoxifen effectiveness by increasing its metabolism through CYP3A4 enzyme induction. This can reduce cancer treatment efficacy. Avoid concurrent use or discuss alternatives with your oncologist.",
		Sources: []Source{
			{Title: "Tamoxifen-St. John's Wort Interaction", URL: "https://www.cancer.gov/about-cancer/treatment/drugs"},
		},
	},
	{
		Terms:       [2]string{"st john's wort", "chemotherapy"},
		Severity:    SeverityHigh,
		Description: "St. John's Wort can interfere with many chemotherapy drugs. Consult your oncologist.",
		Sources: []Source{
			{Title: "St. John's Wort and Cancer Treatment", URL: "https://www.cancer.gov/about-cancer/treatment/cam/patient/st-johns-wort-pdq"},
		},
	},
	{
		Terms:       [2]string{"grapefruit", "chemotherapy"},
		Severity:    SeverityModerate,
		Description: "Grapefruit can affect the metabolism of certain chemotherapy drugs.",
		Sources: []Source{
			{Title: "Grapefruit Drug Interactions", URL: "https://www.cancer.gov/about-cancer/treatment/cam/patient/grapefruit-pdq"},
		},
	},
	{
		Terms:       [2]string{"green tea", "chemotherapy"},
		Severity:    SeverityModerate,
		Description: "Green tea extract may interact with some chemotherapy medications. Discuss with your oncologist.",
		Sources: []Source{
			{Title: "Green Tea and Cancer Treatment", URL: "https://www.cancer.gov/about-cancer/treatment/cam/patient/green-tea-pdq"},
		},
	},
	{
		Terms:       [2]string{"turmeric", "blood thinner"},
		Severity:    SeverityModerate,
		Description: "Turmeric may increase bleeding risk when combined with anticoagulants.",
		Sources: []Source{
			{Title: "Turmeric Interactions", URL: "https://www.nccih.nih.gov/health/turmeric"},
		},
	},
}
