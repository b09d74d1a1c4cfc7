package framework

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/crewforge-labs/crewforge/internal/source"
)

// Marker directive names shared by every framework family.
const (
	MarkerCrew  = "crew"
	MarkerAgent = "agent"
	MarkerTask  = "task"
)

// Anchor comments the generator inserts code after.
const (
	AgentAnchor = "// Agent definitions"
	TaskAnchor  = "// Task definitions"
)

// Framework describes one supported orchestration framework family.
type Framework struct {
	Name         string
	DisplayName  string
	Entrypoint   string // file holding the marked crew definition
	ScaffoldSet  string // embedded scaffold family name
	Receiver     string // receiver name used by generated methods
	ToolsLiteral string // composite literal type of an agent's tool list
	ToolsImport  string // extra import the tool list type needs, if any
}

var families = map[string]*Framework{
	"langchaingo": {
		Name:         "langchaingo",
		DisplayName:  "LangChain Go",
		Entrypoint:   "crew.go",
		ScaffoldSet:  "langchaingo",
		Receiver:     "c",
		ToolsLiteral: "[]tools.Tool",
		ToolsImport:  "github.com/tmc/langchaingo/tools",
	},
	"swarmgo": {
		Name:         "swarmgo",
		DisplayName:  "SwarmGo",
		Entrypoint:   "team.go",
		ScaffoldSet:  "swarmgo",
		Receiver:     "t",
		ToolsLiteral: "[]Tool",
	},
}

// Get returns the framework family by name.
func Get(name string) (*Framework, error) {
	fw, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("unsupported framework %q (supported: %v)", name, Names())
	}
	return fw, nil
}

// Names lists the supported framework names, sorted.
func Names() []string {
	names := make([]string, 0, len(families))
	for n := range families {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EntrypointPath returns the absolute path of the entrypoint within dir.
func (f *Framework) EntrypointPath(dir string) string {
	return filepath.Join(dir, f.Entrypoint)
}

// LoadEntrypoint parses the project's entrypoint file.
func (f *Framework) LoadEntrypoint(dir string) (*source.File, error) {
	return source.Load(f.EntrypointPath(dir))
}

// ValidateProject checks that dir contains a structurally sound project for
// this framework: a parsable entrypoint with one crew-marked type carrying
// at least one agent method, one task method, and a crew assembly method.
// Failures are *source.ParseError or *source.MarkerNotFoundError.
func (f *Framework) ValidateProject(dir string) error {
	file, err := f.LoadEntrypoint(dir)
	if err != nil {
		return err
	}

	crew, err := file.RequireMarkedType(MarkerCrew)
	if err != nil {
		return err
	}
	if _, err := file.RequireMarkedMethods(crew.Name, MarkerAgent); err != nil {
		return err
	}
	if _, err := file.RequireMarkedMethods(crew.Name, MarkerTask); err != nil {
		return err
	}
	if _, err := file.RequireMarkedMethods(crew.Name, MarkerCrew); err != nil {
		return err
	}
	return nil
}
