// Package rulesource carga la tabla de reglas de interacción desde un archivo JSON,
// una URL o la tabla por defecto embebida en el binario.
package rulesource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"regimen-tracker/internal/domain/interactions"
	"regimen-tracker/internal/platform/httpclient"
)

var ErrEmptyTable = errors.New("rule table is empty")

// Origin indica de dónde salió la tabla cargada (para logs).
type Origin string

const (
	OriginDefault Origin = "default"
	OriginFile    Origin = "file"
	OriginURL     Origin = "url"
)

type Config struct {
	File string // RULES_FILE
	URL  string // RULES_URL
}

// ruleJSON es el formato externo:
// [{"terms":["a","b"],"severity":"high","description":"...","sources":[{"title":"...","url":"..."}]}]
type ruleJSON struct {
	Terms       []string     `json:"terms"`
	Severity    string       `json:"severity"`
	Description string       `json:"description"`
	Sources     []sourceJSON `json:"sources"`
}

type sourceJSON struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Load elige el origen: File tiene prioridad sobre URL; sin ninguno, la tabla por defecto.
// Una tabla inválida es error (el caller aborta el arranque).
func Load(ctx context.Context, cfg Config, client *httpclient.Client) (interactions.RuleTable, Origin, error) {
	switch {
	case strings.TrimSpace(cfg.File) != "":
		t, err := LoadFile(cfg.File)
		return t, OriginFile, err
	case strings.TrimSpace(cfg.URL) != "":
		t, err := Fetch(ctx, client, cfg.URL)
		return t, OriginURL, err
	default:
		return interactions.DefaultRules(), OriginDefault, nil
	}
}

func LoadFile(path string) (interactions.RuleTable, error) {
	b, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return interactions.RuleTable{}, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(b)
}

func Fetch(ctx context.Context, client *httpclient.Client, url string) (interactions.RuleTable, error) {
	if client == nil {
		client = httpclient.New(0)
	}
	b, err := client.GetBytes(ctx, url, nil)
	if err != nil {
		return interactions.RuleTable{}, fmt.Errorf("fetch rules: %w", err)
	}
	return Parse(b)
}

// Parse decodifica y valida. Campos desconocidos son error, igual que una tabla vacía.
func Parse(b []byte) (interactions.RuleTable, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var raw []ruleJSON
	if err := dec.Decode(&raw); err != nil {
		return interactions.RuleTable{}, fmt.Errorf("decode rules: %w", err)
	}
	if len(raw) == 0 {
		return interactions.RuleTable{}, ErrEmptyTable
	}

	rules := make([]interactions.Rule, 0, len(raw))
	for i, r := range raw {
		if len(r.Terms) != 2 {
			return interactions.RuleTable{}, fmt.Errorf("%w: rule %d: exactly 2 terms required, got %d",
				interactions.ErrInvalidRule, i, len(r.Terms))
		}
		sev := interactions.Severity(strings.ToLower(strings.TrimSpace(r.Severity)))
		sources := make([]interactions.Source, 0, len(r.Sources))
		for _, s := range r.Sources {
			sources = append(sources, interactions.Source{Title: s.Title, URL: s.URL})
		}
		rules = append(rules, interactions.Rule{
			Terms:       [2]string{r.Terms[0], r.Terms[1]},
			Severity:    sev,
			Description: r.Description,
			Sources:     sources,
		})
	}
	return interactions.NewRuleTable(rules)
}
