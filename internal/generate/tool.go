package generate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/framework"
	"github.com/crewforge-labs/crewforge/internal/project"
	"github.com/crewforge-labs/crewforge/internal/source"
	"github.com/crewforge-labs/crewforge/internal/toolkit"
)

// AddTool installs a toolkit tool into the project: the adapter import and a
// constructor call in each targeted agent's tool list, the tool's env
// defaults appended to .env and .env.example, and the install recorded in
// crewforge.json. An empty agents list targets every agent. Installing an
// already-installed tool is an error.
func AddTool(dir, toolName string, agents []string) error {
	cfg, fw, err := loadProject(dir)
	if err != nil {
		return err
	}
	if cfg.HasTool(toolName) {
		return fmt.Errorf("tool %s is already installed", toolName)
	}
	spec, err := toolkit.Get(toolName)
	if err != nil {
		return err
	}

	file, err := fw.LoadEntrypoint(dir)
	if err != nil {
		return err
	}
	crew, err := file.RequireMarkedType(framework.MarkerCrew)
	if err != nil {
		return err
	}

	targets, err := targetMethods(file, crew.Name, agents)
	if err != nil {
		return err
	}

	if err := file.AddNamedImport(spec.Alias, spec.ImportPath); err != nil {
		return err
	}
	if fw.ToolsImport != "" {
		if err := file.AddImport(fw.ToolsImport); err != nil {
			return err
		}
	}

	call, err := constructorCall(spec)
	if err != nil {
		return err
	}
	// Each splice invalidates earlier offsets, so re-locate the method
	// before every insertion.
	for _, method := range targets {
		def, err := findMethod(file, framework.MarkerAgent, method)
		if err != nil {
			return err
		}
		start, _, err := file.CompositeLitInside(def, fw.ToolsLiteral)
		if err != nil {
			return err
		}
		if err := file.Insert(start, call+", "); err != nil {
			return err
		}
	}

	if err := file.Save(); err != nil {
		return err
	}
	if err := appendEnvDefaults(dir, spec); err != nil {
		return err
	}

	cfg.AddTool(toolName)
	return cfg.Save(dir)
}

// RemoveTool uninstalls a tool: constructor calls are removed from every
// agent, the adapter import is dropped once nothing references it, and the
// install record is cleared. Env entries are deliberately preserved.
func RemoveTool(dir, toolName string) error {
	cfg, fw, err := loadProject(dir)
	if err != nil {
		return err
	}
	if !cfg.HasTool(toolName) {
		return fmt.Errorf("tool %s is not installed", toolName)
	}
	spec, err := toolkit.Get(toolName)
	if err != nil {
		return err
	}

	file, err := fw.LoadEntrypoint(dir)
	if err != nil {
		return err
	}
	crew, err := file.RequireMarkedType(framework.MarkerCrew)
	if err != nil {
		return err
	}

	call, err := constructorCall(spec)
	if err != nil {
		return err
	}
	for {
		removed, err := removeOneCall(file, crew.Name, fw.ToolsLiteral, call)
		if err != nil {
			return err
		}
		if !removed {
			break
		}
	}

	// Another installed tool may live in the same adapter package
	// (file_read and directory_search share one), so only drop the
	// import when the alias is no longer referenced.
	if !bytes.Contains(file.Bytes(), []byte(spec.Alias+".")) {
		if err := file.RemoveImport(spec.ImportPath); err != nil {
			return err
		}
	}

	if err := file.Save(); err != nil {
		return err
	}

	cfg.RemoveTool(toolName)
	return cfg.Save(dir)
}

// constructorCall renders the expression spliced into a tool list, e.g.
// "exatool.NewFromEnv()".
func constructorCall(spec toolkit.Tool) (string, error) {
	ref, err := source.RenderExpr(source.SelectorRef(spec.Constructor, spec.Alias))
	if err != nil {
		return "", err
	}
	return ref + "()", nil
}

// targetMethods resolves requested agent names to the entrypoint's agent
// method names, defaulting to all agents. Unknown names are an error naming
// the agents that do exist.
func targetMethods(file *source.File, crewType string, agents []string) ([]string, error) {
	defs, err := file.RequireMarkedMethods(crewType, framework.MarkerAgent)
	if err != nil {
		return nil, err
	}
	available := make(map[string]bool, len(defs))
	var all []string
	for _, d := range defs {
		available[d.Name] = true
		all = append(all, d.Name)
	}
	if len(agents) == 0 {
		return all, nil
	}

	var out []string
	for _, name := range agents {
		method := blueprint.MethodName(name)
		if !available[method] {
			return nil, fmt.Errorf("no agent %q in project (have: %s)", name, strings.Join(all, ", "))
		}
		out = append(out, method)
	}
	return out, nil
}

// findMethod re-locates a marked method by name after prior edits.
func findMethod(file *source.File, marker, name string) (source.Definition, error) {
	crew, err := file.RequireMarkedType(framework.MarkerCrew)
	if err != nil {
		return source.Definition{}, err
	}
	for _, d := range file.MarkedMethods(crew.Name, marker) {
		if d.Name == name {
			return d, nil
		}
	}
	return source.Definition{}, &source.MarkerNotFoundError{Marker: marker, Scope: name + " in " + file.Path}
}

// removeOneCall deletes the first occurrence of call from any agent's tool
// list, including a trailing comma and space. Reports whether an occurrence
// was found.
func removeOneCall(file *source.File, crewType, toolsLiteral, call string) (bool, error) {
	defs := file.MarkedMethods(crewType, framework.MarkerAgent)
	for _, def := range defs {
		elems, err := file.CompositeLitElems(def, toolsLiteral)
		if err != nil {
			// An agent method without a tool list has nothing to remove.
			continue
		}
		for _, elem := range elems {
			if elem.Text != call {
				continue
			}
			end := elem.End
			src := file.Bytes()
			for end < len(src) && (src[end] == ' ' || src[end] == '\t' || src[end] == '\n') {
				end++
			}
			if end < len(src) && src[end] == ',' {
				end++
				if end < len(src) && src[end] == ' ' {
					end++
				}
			}
			if err := file.Splice(elem.Pos, end, ""); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// appendEnvDefaults appends the tool's env defaults to .env and
// .env.example, never overwriting keys that are already present.
func appendEnvDefaults(dir string, spec toolkit.Tool) error {
	if len(spec.Env) == 0 {
		return nil
	}
	for _, name := range []string{".env", ".env.example"} {
		env, err := project.LoadEnv(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		for _, v := range spec.Env {
			env.AppendIfNew(v.Name, v.Default)
		}
		if err := env.Write(); err != nil {
			return err
		}
	}
	return nil
}
