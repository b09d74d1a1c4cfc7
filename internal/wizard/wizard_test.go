package wizard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
)

func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }

func typeText(m *model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestBlueprintAssembly(t *testing.T) {
	m := initialModel("")
	m.project = map[string]string{"name": "My Crew", "description": "Does things"}
	m.framework = "swarmgo"
	m.agents = []blueprint.Agent{{Name: "scout", Role: "Scout"}}
	m.tasks = []blueprint.Task{
		{Name: "survey", Description: "Survey {{region}} for {{topic}}", Agent: "scout"},
		{Name: "report", Description: "Report on {{topic}}", Agent: "scout"},
	}
	for i, tool := range m.tools {
		if tool.Name == "exa" {
			m.selected[i] = true
		}
	}

	bp := m.blueprint()
	if bp.Name != "my_crew" {
		t.Errorf("Name = %q, want my_crew", bp.Name)
	}
	if bp.Framework != "swarmgo" || bp.Method != "sequential" {
		t.Errorf("framework/method = %q/%q", bp.Framework, bp.Method)
	}
	if len(bp.Tools) != 1 || bp.Tools[0].Name != "exa" {
		t.Errorf("Tools = %+v", bp.Tools)
	}
	// Inputs come from task descriptions, deduplicated, first appearance
	// first.
	want := []string{"region", "topic"}
	if len(bp.Inputs) != len(want) {
		t.Fatalf("Inputs = %v, want %v", bp.Inputs, want)
	}
	for i := range want {
		if bp.Inputs[i] != want[i] {
			t.Errorf("Inputs[%d] = %q, want %q", i, bp.Inputs[i], want[i])
		}
	}
}

func TestProjectPhaseRequiresName(t *testing.T) {
	m := initialModel("")
	m.Update(keyEnter())
	if m.errMsg == "" {
		t.Error("submitting an empty required field should set an error")
	}
	if m.phase != phaseProject || m.idx != 0 {
		t.Error("model should stay on the name field")
	}

	typeText(m, "demo")
	m.Update(keyEnter())
	if m.errMsg != "" {
		t.Errorf("error not cleared: %q", m.errMsg)
	}
	if m.idx != 1 {
		t.Errorf("idx = %d, want 1", m.idx)
	}
}

func TestPhaseFlowThroughFramework(t *testing.T) {
	m := initialModel("demo")
	m.Update(keyEnter()) // name (pre-filled)
	m.Update(keyEnter()) // description (optional, blank)
	if m.phase != phaseFramework {
		t.Fatalf("phase = %d, want framework picker", m.phase)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(keyEnter())
	if m.framework != "swarmgo" {
		t.Errorf("framework = %q, want swarmgo", m.framework)
	}
	if m.phase != phaseAgent {
		t.Errorf("phase = %d, want agent fields", m.phase)
	}
}

func TestAgentNameSlugged(t *testing.T) {
	m := initialModel("")
	m.startPhase(phaseAgent, agentFields)
	typeText(m, "Lead Researcher")
	for range agentFields {
		m.Update(keyEnter())
	}
	if len(m.agents) != 1 || m.agents[0].Name != "lead_researcher" {
		t.Errorf("agents = %+v", m.agents)
	}
	if m.phase != phaseAgentMore {
		t.Errorf("phase = %d, want agent-more prompt", m.phase)
	}
}

func TestCtrlCCancels(t *testing.T) {
	m := initialModel("")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.canceled {
		t.Error("ctrl-c should mark the model canceled")
	}
}
