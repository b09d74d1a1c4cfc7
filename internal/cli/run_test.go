package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/crewforge-labs/crewforge/internal/project"
	"github.com/crewforge-labs/crewforge/internal/source"
)

const runTestEntrypoint = `package main

//crewforge:crew
type DemoCrew struct{}

// Agent definitions

//crewforge:agent
func (c *DemoCrew) Helper() *Agent {
	return &Agent{}
}

// Task definitions

//crewforge:task
func (c *DemoCrew) Greet() *Task {
	return &Task{}
}

//crewforge:crew
func (c *DemoCrew) Crew() *Crew {
	return &Crew{}
}
`

func writeRunProject(t *testing.T, entrypoint string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := &project.Config{Framework: "langchaingo", Tools: []string{}}
	if err := cfg.Save(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "crew.go"), []byte(entrypoint), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestValidateProjectSound(t *testing.T) {
	dir := writeRunProject(t, runTestEntrypoint)
	if err := validateProject(dir); err != nil {
		t.Errorf("validateProject on a sound project: %v", err)
	}
}

func TestValidateProjectUnmarkedEntrypoint(t *testing.T) {
	dir := writeRunProject(t, "package main\n\ntype DemoCrew struct{}\n")
	err := validateProject(dir)
	var markerErr *source.MarkerNotFoundError
	if !errors.As(err, &markerErr) {
		t.Errorf("expected a marker error for an unmarked entrypoint, got %v", err)
	}
}

func TestValidateProjectBrokenEntrypoint(t *testing.T) {
	dir := writeRunProject(t, "package main\n\nfunc broken( {\n")
	err := validateProject(dir)
	var parseErr *source.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected a parse error for a broken entrypoint, got %v", err)
	}
}
