package generate

import (
	"path/filepath"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/crewforge-labs/crewforge/internal/framework"
	"github.com/crewforge-labs/crewforge/internal/project"
)

// Config file locations inside a project, relative to its root.
const (
	agentsConfigPath = "config/agents.yaml"
	tasksConfigPath  = "config/tasks.yaml"
)

// loadProject resolves a directory to its project config and framework
// family, and validates the project structure before any modification.
func loadProject(dir string) (*project.Config, *framework.Framework, error) {
	cfg, err := project.LoadConfig(dir)
	if err != nil {
		return nil, nil, err
	}
	fw, err := framework.Get(cfg.Framework)
	if err != nil {
		return nil, nil, err
	}
	if err := fw.ValidateProject(dir); err != nil {
		return nil, nil, err
	}
	return cfg, fw, nil
}

func agentsYAML(dir string) string { return filepath.Join(dir, filepath.FromSlash(agentsConfigPath)) }
func tasksYAML(dir string) string  { return filepath.Join(dir, filepath.FromSlash(tasksConfigPath)) }

// snippetBlock normalizes an indented raw-string snippet into an insertable
// block: dedented, surrounded by exactly one leading and trailing newline.
// Save's gofmt pass settles the final spacing.
func snippetBlock(s string) string {
	return "\n" + strings.TrimSpace(dedent.Dedent(s)) + "\n"
}
