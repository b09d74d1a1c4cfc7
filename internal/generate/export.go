package generate

import (
	"path/filepath"
	"sort"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/framework"
	"github.com/crewforge-labs/crewforge/internal/source"
	"github.com/crewforge-labs/crewforge/internal/toolkit"
)

// Export reads a project back into a blueprint: agents and tasks in
// entrypoint method order with their YAML config attached, installed tools
// with their per-agent attachments, and the input placeholders referenced by
// task descriptions. The result round-trips through `init --template`.
func Export(dir string) (*blueprint.Blueprint, error) {
	cfg, fw, err := loadProject(dir)
	if err != nil {
		return nil, err
	}

	file, err := fw.LoadEntrypoint(dir)
	if err != nil {
		return nil, err
	}
	crew, err := file.RequireMarkedType(framework.MarkerCrew)
	if err != nil {
		return nil, err
	}

	agentKeys, agentValues, err := readMapping(agentsYAML(dir))
	if err != nil {
		return nil, err
	}
	taskKeys, taskValues, err := readMapping(tasksYAML(dir))
	if err != nil {
		return nil, err
	}

	bp := &blueprint.Blueprint{
		Name:            blueprint.Slug(filepath.Base(dir)),
		Description:     "Exported from " + filepath.Base(dir),
		TemplateVersion: blueprint.SupportedVersion,
		Framework:       cfg.Framework,
		Method:          "sequential",
		Tools:           []blueprint.Tool{},
		Inputs:          []string{},
	}

	// Entrypoint method order is authoritative; the YAML key that produced
	// each method carries the config.
	agentMethods := file.MarkedMethods(crew.Name, framework.MarkerAgent)
	methodToAgent := make(map[string]string, len(agentKeys))
	for _, def := range agentMethods {
		key := keyForMethod(def.Name, agentKeys)
		if key == "" {
			continue
		}
		methodToAgent[def.Name] = key
		fields := agentValues[key]
		bp.Agents = append(bp.Agents, blueprint.Agent{
			Name:      key,
			Role:      fields["role"],
			Goal:      fields["goal"],
			Backstory: fields["backstory"],
			Model:     fields["llm"],
		})
	}

	inputs := map[string]bool{}
	for _, def := range file.MarkedMethods(crew.Name, framework.MarkerTask) {
		key := keyForMethod(def.Name, taskKeys)
		if key == "" {
			continue
		}
		fields := taskValues[key]
		bp.Tasks = append(bp.Tasks, blueprint.Task{
			Name:           key,
			Description:    fields["description"],
			ExpectedOutput: fields["expected_output"],
			Agent:          fields["agent"],
		})
		for _, name := range blueprint.InputNames(fields["description"]) {
			inputs[name] = true
		}
	}
	for name := range inputs {
		bp.Inputs = append(bp.Inputs, name)
	}
	sort.Strings(bp.Inputs)

	for _, name := range cfg.Tools {
		attached, err := toolAttachments(file, fw.ToolsLiteral, name, agentMethods, methodToAgent)
		if err != nil {
			return nil, err
		}
		bp.Tools = append(bp.Tools, blueprint.Tool{Name: name, Agents: attached})
	}
	return bp, nil
}

// keyForMethod maps a generated method name back to the YAML key it came
// from. Methods without a config entry (hand-written ones) are skipped.
func keyForMethod(method string, keys []string) string {
	for _, key := range keys {
		if blueprint.MethodName(key) == method {
			return key
		}
	}
	return ""
}

// toolAttachments lists the agents whose tool list contains the tool's
// constructor call. A tool attached to every agent exports an empty list,
// which means "all agents" on re-import.
func toolAttachments(file *source.File, toolsLiteral, toolName string, agentMethods []source.Definition, methodToAgent map[string]string) ([]string, error) {
	spec, err := toolkit.Get(toolName)
	if err != nil {
		return nil, err
	}
	call, err := constructorCall(spec)
	if err != nil {
		return nil, err
	}

	var attached []string
	for _, def := range agentMethods {
		elems, err := file.CompositeLitElems(def, toolsLiteral)
		if err != nil {
			continue
		}
		for _, elem := range elems {
			if elem.Text == call {
				if agent := methodToAgent[def.Name]; agent != "" {
					attached = append(attached, agent)
				}
				break
			}
		}
	}
	if len(attached) == len(agentMethods) {
		return nil, nil
	}
	return attached, nil
}
