package scaffold

import (
	"time"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/toolkit"
)

// Data holds all template variables available to scaffold templates. It is
// fully resolved before any file is rendered: every tool reference has been
// looked up in the toolkit registry and every derived identifier computed.
type Data struct {
	Name        string // project slug, e.g. "web_scraper"
	TypeName    string // derived crew type base, e.g. "WebScraper"
	Module      string // module path of the generated project
	Description string
	Framework   string
	Method      string
	Version     string // CLI version that generated the project
	Year        int

	Agents []AgentData
	Tasks  []TaskData
	Tools  []ToolData
	Inputs []string

	// Imports is Tools deduplicated by package alias, for import blocks.
	// Two registry entries may live in the same adapter package.
	Imports []ToolData
}

// AgentData is one agent block. Tools lists only the adapters attached to
// this agent, in blueprint order.
type AgentData struct {
	Name       string
	MethodName string
	Role       string
	Goal       string
	Backstory  string
	Model      string
	Tools      []ToolData
}

// TaskData is one task block.
type TaskData struct {
	Name           string
	MethodName     string
	Description    string
	ExpectedOutput string
	Agent          string
	AgentMethod    string
}

// ToolData is a resolved toolkit reference.
type ToolData struct {
	Name        string
	ImportPath  string
	Alias       string
	Constructor string
	Env         []toolkit.EnvVar
	Agents      []string
}

// NewData resolves a blueprint into template data. Every tool the blueprint
// references must exist in the toolkit registry; an unknown name yields a
// MaterializationError before anything is written.
func NewData(bp *blueprint.Blueprint, version string) (*Data, error) {
	d := &Data{
		Name:        blueprint.Slug(bp.Name),
		TypeName:    blueprint.TypeName(bp.Name),
		Module:      blueprint.PackageName(bp.Name),
		Description: bp.Description,
		Framework:   bp.Framework,
		Method:      bp.Method,
		Version:     version,
		Year:        time.Now().Year(),
		Inputs:      bp.Inputs,
	}

	for _, t := range bp.Tools {
		spec, err := toolkit.Get(t.Name)
		if err != nil {
			return nil, &MaterializationError{Key: t.Name, Err: err}
		}
		d.Tools = append(d.Tools, ToolData{
			Name:        spec.Name,
			ImportPath:  spec.ImportPath,
			Alias:       spec.Alias,
			Constructor: spec.Constructor,
			Env:         spec.Env,
			Agents:      t.Agents,
		})
	}

	seen := make(map[string]bool)
	for _, t := range d.Tools {
		if !seen[t.Alias] {
			seen[t.Alias] = true
			d.Imports = append(d.Imports, t)
		}
	}

	for _, a := range bp.Agents {
		d.Agents = append(d.Agents, AgentData{
			Name:       a.Name,
			MethodName: blueprint.MethodName(a.Name),
			Role:       a.Role,
			Goal:       a.Goal,
			Backstory:  a.Backstory,
			Model:      a.Model,
			Tools:      toolsForAgent(d.Tools, a.Name),
		})
	}

	for _, t := range bp.Tasks {
		d.Tasks = append(d.Tasks, TaskData{
			Name:           t.Name,
			MethodName:     blueprint.MethodName(t.Name),
			Description:    t.Description,
			ExpectedOutput: t.ExpectedOutput,
			Agent:          t.Agent,
			AgentMethod:    blueprint.MethodName(t.Agent),
		})
	}

	return d, nil
}

// toolsForAgent filters the resolved tools down to those attached to one
// agent. An empty Agents list on a tool means every agent gets it.
func toolsForAgent(all []ToolData, agent string) []ToolData {
	var out []ToolData
	for _, t := range all {
		if len(t.Agents) == 0 {
			out = append(out, t)
			continue
		}
		for _, a := range t.Agents {
			if a == agent {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
