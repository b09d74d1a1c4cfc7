package generate

import (
	"fmt"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/framework"
)

// Placeholder texts for fields the user left blank, filled in so the
// generated config is runnable-after-editing rather than invalid.
const (
	placeholderRole      = "Add your role here"
	placeholderGoal      = "Add your goal here"
	placeholderBackstory = "Add your backstory here"
	placeholderModel     = "Add your llm here with format provider/model"
)

// AddAgent appends the agent to config/agents.yaml and splices a new marked
// agent method into the entrypoint, directly after the agent-definitions
// anchor. Empty fields get placeholder texts.
func AddAgent(dir string, agent blueprint.Agent) error {
	if agent.Name == "" {
		return fmt.Errorf("agent name is required")
	}
	if agent.Role == "" {
		agent.Role = placeholderRole
	}
	if agent.Goal == "" {
		agent.Goal = placeholderGoal
	}
	if agent.Backstory == "" {
		agent.Backstory = placeholderBackstory
	}
	if agent.Model == "" {
		agent.Model = placeholderModel
	}

	_, fw, err := loadProject(dir)
	if err != nil {
		return err
	}

	if err := appendMapping(agentsYAML(dir), agent.Name, []yamlField{
		{Name: "role", Value: agent.Role, Folded: true},
		{Name: "goal", Value: agent.Goal, Folded: true},
		{Name: "backstory", Value: agent.Backstory, Folded: true},
		{Name: "llm", Value: agent.Model},
	}); err != nil {
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

	snippet := snippetBlock(fmt.Sprintf(`
		//crewforge:agent
		func (%s *%s) %s() *Agent {
			return &Agent{
				Config: %s.config.Agents[%q],
				Tools:  %s{},
			}
		}
	`, fw.Receiver, crew.Name, blueprint.MethodName(agent.Name), fw.Receiver, agent.Name, fw.ToolsLiteral))

	if err := file.InsertAfterTag(framework.AgentAnchor, snippet); err != nil {
		return err
	}
	return file.Save()
}
