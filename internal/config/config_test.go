package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cfast/internal/question"
)

// TestParseDefaultYAML verifies the scaffolded config parses and
// validates cleanly.
func TestParseDefaultYAML(t *testing.T) {
	cfg, err := Parse([]byte(DefaultYAML))
	if err != nil {
		t.Fatalf("parse default config: %v", err)
	}
	if cfg.Session.Questions != 10 {
		t.Fatalf("expected 10 questions, got %d", cfg.Session.Questions)
	}
	if cfg.Store.Path != "cfast.duckdb" {
		t.Fatalf("expected store path, got %q", cfg.Store.Path)
	}
	settings, err := cfg.Settings(question.DomainAirborneNumerical)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	fuel, ok := settings[question.TopicFuelEndurance]
	if !ok {
		t.Fatalf("missing fuel endurance settings")
	}
	if fuel.TimeLimit != 45*time.Second {
		t.Fatalf("expected 45s limit, got %s", fuel.TimeLimit)
	}
	if fuel.Tolerance.Absolute != 0.05 {
		t.Fatalf("expected 0.05 absolute band, got %v", fuel.Tolerance.Absolute)
	}
	drift := settings[question.TopicParcelDrift]
	if drift.Tolerance.Relative != 0.05 {
		t.Fatalf("expected 5%% relative band, got %v", drift.Tolerance.Relative)
	}
	arithmetic, err := cfg.Settings(question.DomainNumericalOperations)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	mental, ok := arithmetic[question.TopicMentalArithmetic]
	if !ok {
		t.Fatalf("missing mental arithmetic settings")
	}
	if mental.TimeLimit != 20*time.Second {
		t.Fatalf("expected 20s limit, got %s", mental.TimeLimit)
	}
	if mental.Tolerance.Allowed(42) != 0 {
		t.Fatalf("expected exact-match band, got %v", mental.Tolerance.Allowed(42))
	}
}

// TestParseRejectsUnknownFields verifies strict decoding.
func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version: 1\nbogus: true\n"))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

// TestValidateCollectsAllIssues verifies validation reports every
// problem, not just the first.
func TestValidateCollectsAllIssues(t *testing.T) {
	raw := `
version: 3
session:
  questions: -1
  difficulty: 2.0
domains:
  airborne-numerical:
    topics:
      fuel-endurance:
        time_limit: 45s
        tolerance:
          absolute: -0.1
      wind-triangle:
        time_limit: 30s
`
	_, err := Parse([]byte(raw))
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Issues) < 4 {
		t.Fatalf("expected at least 4 issues, got %d: %v", len(validation.Issues), validation)
	}
	message := validation.Error()
	for _, fragment := range []string{"version", "questions", "difficulty", "wind-triangle", "tolerance.absolute"} {
		if !strings.Contains(message, fragment) {
			t.Fatalf("expected %q in error, got %s", fragment, message)
		}
	}
}

// TestValidateRejectsUnknownDomain verifies unconfigured domains fail.
func TestValidateRejectsUnknownDomain(t *testing.T) {
	raw := `
version: 1
domains:
  verbal-reasoning:
    topics:
      synonyms:
        time_limit: 30s
`
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatalf("expected error for unknown domain")
	}
}

// TestParseRejectsBadDuration verifies duration strings are checked.
func TestParseRejectsBadDuration(t *testing.T) {
	raw := `
version: 1
domains:
  airborne-numerical:
    topics:
      fuel-endurance:
        time_limit: eventually
`
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatalf("expected error for unparseable duration")
	}
}

// TestScaffoldRefusesOverwrite verifies init never clobbers an existing
// config.
func TestScaffoldRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfast.yml")
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected error on second scaffold")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scaffold: %v", err)
	}
	if string(data) != DefaultYAML {
		t.Fatalf("scaffolded file differs from DefaultYAML")
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
}
