package interactions

import (
	"errors"
	"testing"
)

func TestNewRuleTable_Validation(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
	}{
		{"missing term", Rule{Terms: [2]string{"warfarin", " "}, Severity: SeverityHigh, Description: "x"}},
		{"same terms", Rule{Terms: [2]string{"Iron", "iron"}, Severity: SeverityLow, Description: "x"}},
		{"unknown severity", Rule{Terms: [2]string{"a", "b"}, Severity: SeverityUnknown, Description: "x"}},
		{"bad severity", Rule{Terms: [2]string{"a", "b"}, Severity: "critical", Description: "x"}},
		{"missing description", Rule{Terms: [2]string{"a", "b"}, Severity: SeverityLow}},
	}
	for _, tc := range cases {
		_, err := NewRuleTable([]Rule{tc.rule})
		if !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("%s: expected ErrInvalidRule, got %v", tc.name, err)
		}
	}
}

func TestDefaultRules_OrderAndCopy(t *testing.T) {
	table := DefaultRules()
	if table.Len() != 8 {
		t.Fatalf("expected 8 default rules, got %d", table.Len())
	}

	rules := table.Rules()
	wantFirst := [2]string{"warfarin", "vitamin k"}
	wantLast := [2]string{"turmeric", "blood thinner"}
	if rules[0].Terms != wantFirst || rules[7].Terms != wantLast {
		t.Fatalf("unexpected order: first %v last %v", rules[0].Terms, rules[7].Terms)
	}

	// Mutar la copia no afecta la tabla.
	rules[0].Sources[0].URL = "mutated"
	if table.Rules()[0].Sources[0].URL == "mutated" {
		t.Fatalf("Rules must return a copy")
	}
}
