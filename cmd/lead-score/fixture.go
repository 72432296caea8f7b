package main

import (
	"fmt"
	"io"
	"strings"

	"orpaynter_backend/internal/leads/scoring"

	"gopkg.in/yaml.v3"
)

// fixture is one prospect's answers as written in a review file.
type fixture struct {
	Name            string `yaml:"name"`
	Budget          string `yaml:"budget"`
	Authority       string `yaml:"authority"`
	Need            string `yaml:"need"`
	Timeline        string `yaml:"timeline"`
	IsDecisionMaker *bool  `yaml:"is_decision_maker"`
	DamageSeverity  string `yaml:"damage_severity"`
	UrgencyLevel    *int   `yaml:"urgency_level"`
	HasInsurance    bool   `yaml:"has_insurance"`
	ClaimFiled      bool   `yaml:"claim_filed"`
	PropertyType    string `yaml:"property_type"`
}

type fixtureFile struct {
	Leads []fixture `yaml:"leads"`
}

// result pairs both policies' outcomes for one fixture.
type result struct {
	Name       string                   `json:"name"`
	Keywords   scoring.KeywordResult    `json:"keywords"`
	Structured scoring.StructuredResult `json:"structured"`
	Emergency  bool                     `json:"emergencyCallback"`
}

// parseFixtures decodes a YAML or JSON document. JSON parses as YAML, so one
// decoder covers both.
func parseFixtures(r io.Reader) ([]fixture, error) {
	var file fixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return file.Leads, nil
}

func (f fixture) input() scoring.Input {
	return scoring.Input{
		Budget:          f.Budget,
		Authority:       f.Authority,
		Need:            f.Need,
		Timeline:        f.Timeline,
		IsDecisionMaker: f.IsDecisionMaker,
		DamageSeverity:  scoring.ParseDamageSeverity(f.DamageSeverity),
		UrgencyLevel:    f.UrgencyLevel,
		HasInsurance:    f.HasInsurance,
		ClaimFiled:      f.ClaimFiled,
		PropertyType:    strings.ToLower(strings.TrimSpace(f.PropertyType)),
	}
}

func scoreFixtures(fixtures []fixture, threshold int) []result {
	out := make([]result, 0, len(fixtures))
	for i, f := range fixtures {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("lead-%d", i+1)
		}
		in := f.input()
		structured := scoring.ScoreByStructuredFields(in)
		out = append(out, result{
			Name:       name,
			Keywords:   scoring.ScoreByKeywords(in),
			Structured: structured,
			Emergency:  scoring.RequiresEmergencyCallback(structured.Overall, in.DamageSeverity, threshold),
		})
	}
	return out
}
