package postgres

import (
	"encoding/json"

	"regimen-tracker/internal/domain/interactions"
	"regimen-tracker/internal/domain/patients"
)

// Formas JSONB persistidas. Se mandan como texto (string) y pgx las castea a jsonb.

type careTeamJSON struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Contact string `json:"contact"`
}

type sourceJSON struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

func unmarshalTags(b []byte) ([]string, error) {
	out := []string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func marshalCareTeam(team []patients.CareTeamMember) ([]byte, error) {
	out := make([]careTeamJSON, 0, len(team))
	for _, m := range team {
		out = append(out, careTeamJSON{Name: m.Name, Role: m.Role, Contact: m.Contact})
	}
	return json.Marshal(out)
}

func unmarshalCareTeam(b []byte) ([]patients.CareTeamMember, error) {
	var raw []careTeamJSON
	if len(b) > 0 {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, err
		}
	}
	out := make([]patients.CareTeamMember, 0, len(raw))
	for _, m := range raw {
		out = append(out, patients.CareTeamMember{Name: m.Name, Role: m.Role, Contact: m.Contact})
	}
	return out, nil
}

func marshalSources(sources []interactions.Source) ([]byte, error) {
	out := make([]sourceJSON, 0, len(sources))
	for _, s := range sources {
		out = append(out, sourceJSON{Title: s.Title, URL: s.URL})
	}
	return json.Marshal(out)
}

func unmarshalSources(b []byte) ([]interactions.Source, error) {
	var raw []sourceJSON
	if len(b) > 0 {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, err
		}
	}
	out := make([]interactions.Source, 0, len(raw))
	for _, s := range raw {
		out = append(out, interactions.Source{Title: s.Title, URL: s.URL})
	}
	return out, nil
}
