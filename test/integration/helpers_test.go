//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/project"
	"github.com/crewforge-labs/crewforge/internal/scaffold"
)

// scaffoldProject materializes a built-in blueprint into a temp directory and
// writes the project state file, the way `crewforge init` does.
func scaffoldProject(t *testing.T, blueprintName string) string {
	t.Helper()

	bp, err := blueprint.FromName(blueprintName)
	if err != nil {
		t.Fatalf("loading blueprint %s: %v", blueprintName, err)
	}

	data, err := scaffold.NewData(bp, "test")
	if err != nil {
		t.Fatalf("building scaffold data: %v", err)
	}

	dir := filepath.Join(t.TempDir(), bp.Name)
	if _, err := scaffold.Generate(bp.Framework, data, dir); err != nil {
		t.Fatalf("generating project: %v", err)
	}

	cfg := &project.Config{
		Framework:       bp.Framework,
		Tools:           toolNames(bp),
		Template:        blueprintName,
		TemplateVersion: bp.TemplateVersion,
	}
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("saving project config: %v", err)
	}
	return dir
}

func toolNames(bp *blueprint.Blueprint) []string {
	names := make([]string, len(bp.Tools))
	for i, tool := range bp.Tools {
		names[i] = tool.Name
	}
	return names
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr, context string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("%s: expected to find %q in:\n%s", context, substr, content)
	}
}
