package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/framework"
	"github.com/crewforge-labs/crewforge/internal/toolkit"
)

type phase int

const (
	phaseProject phase = iota
	phaseFramework
	phaseAgent
	phaseAgentMore
	phaseTask
	phaseTaskMore
	phaseTools
	phaseDone
)

// field is one text prompt within a phase.
type field struct {
	key         string
	prompt      string
	placeholder string
	required    bool
}

var projectFields = []field{
	{key: "name", prompt: "Project name", placeholder: "my_crew", required: true},
	{key: "description", prompt: "What does this crew do?", placeholder: "Researches a topic and writes a report"},
}

var agentFields = []field{
	{key: "name", prompt: "Agent name", placeholder: "researcher", required: true},
	{key: "role", prompt: "Role", placeholder: "Senior researcher"},
	{key: "goal", prompt: "Goal", placeholder: "Find accurate, current information"},
	{key: "backstory", prompt: "Backstory", placeholder: "A methodical analyst who cites sources"},
	{key: "model", prompt: "Model", placeholder: "openai/gpt-4o"},
}

var taskFields = []field{
	{key: "name", prompt: "Task name", placeholder: "research", required: true},
	{key: "description", prompt: "Description", placeholder: "Research {{topic}} and collect sources"},
	{key: "expected_output", prompt: "Expected output", placeholder: "A bullet list of findings"},
	{key: "agent", prompt: "Responsible agent", placeholder: "researcher"},
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type model struct {
	phase  phase
	fields []field
	idx    int
	values map[string]string
	errMsg string

	input textinput.Model

	// choice cursors for the framework picker and yes/no prompts.
	frameworks []string
	cursor     int
	yes        bool

	// tool checklist
	tools    []toolkit.Tool
	selected map[int]bool

	// accumulated results
	project   map[string]string
	framework string
	agents    []blueprint.Agent
	tasks     []blueprint.Task

	canceled bool
}

func initialModel(defaultName string) *model {
	input := textinput.New()
	input.CharLimit = 200
	input.Focus()

	tools, _ := toolkit.All()

	m := &model{
		phase:      phaseProject,
		fields:     projectFields,
		values:     map[string]string{},
		input:      input,
		frameworks: framework.Names(),
		tools:      tools,
		selected:   map[int]bool{},
	}
	m.applyField()
	if defaultName != "" {
		m.input.SetValue(defaultName)
	}
	return m
}

// applyField configures the text input for the current field.
func (m *model) applyField() {
	f := m.fields[m.idx]
	m.input.Placeholder = f.placeholder
	m.input.SetValue("")
	m.input.CursorEnd()
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey && key.Type == tea.KeyCtrlC {
		m.canceled = true
		return m, tea.Quit
	}

	switch m.phase {
	case phaseProject, phaseAgent, phaseTask:
		if isKey && key.Type == tea.KeyEnter {
			return m.submitField()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case phaseFramework:
		if isKey {
			return m.updateChoice(key, len(m.frameworks), func() {
				m.framework = m.frameworks[m.cursor]
				m.startPhase(phaseAgent, agentFields)
			})
		}
	case phaseAgentMore, phaseTaskMore:
		if isKey {
			return m.updateYesNo(key)
		}
	case phaseTools:
		if isKey {
			return m.updateTools(key)
		}
	}
	return m, nil
}

// submitField records the current answer and advances to the next field or
// phase.
func (m *model) submitField() (tea.Model, tea.Cmd) {
	f := m.fields[m.idx]
	value := strings.TrimSpace(m.input.Value())
	if value == "" && f.required {
		m.errMsg = f.prompt + " is required"
		return m, nil
	}
	m.errMsg = ""
	m.values[f.key] = value

	if m.idx+1 < len(m.fields) {
		m.idx++
		m.applyField()
		return m, nil
	}

	switch m.phase {
	case phaseProject:
		m.project = m.values
		m.phase = phaseFramework
		m.cursor = 0
	case phaseAgent:
		m.agents = append(m.agents, blueprint.Agent{
			Name:      blueprint.Slug(m.values["name"]),
			Role:      m.values["role"],
			Goal:      m.values["goal"],
			Backstory: m.values["backstory"],
			Model:     m.values["model"],
		})
		m.phase = phaseAgentMore
		m.yes = false
	case phaseTask:
		m.tasks = append(m.tasks, blueprint.Task{
			Name:           blueprint.Slug(m.values["name"]),
			Description:    m.values["description"],
			ExpectedOutput: m.values["expected_output"],
			Agent:          blueprint.Slug(m.values["agent"]),
		})
		m.phase = phaseTaskMore
		m.yes = false
	}
	return m, nil
}

// startPhase resets the field walk for a new phase.
func (m *model) startPhase(p phase, fields []field) {
	m.phase = p
	m.fields = fields
	m.idx = 0
	m.values = map[string]string{}
	m.applyField()
}

func (m *model) updateChoice(key tea.KeyMsg, n int, choose func()) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < n-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		choose()
	}
	return m, nil
}

func (m *model) updateYesNo(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Type == tea.KeyLeft || key.Type == tea.KeyRight ||
		key.Type == tea.KeyUp || key.Type == tea.KeyDown:
		m.yes = !m.yes
	case key.String() == "y":
		m.yes = true
	case key.String() == "n":
		m.yes = false
	case key.Type == tea.KeyEnter:
		if m.phase == phaseAgentMore {
			if m.yes {
				m.startPhase(phaseAgent, agentFields)
			} else {
				m.startPhase(phaseTask, taskFields)
			}
		} else {
			if m.yes {
				m.startPhase(phaseTask, taskFields)
			} else {
				m.phase = phaseTools
				m.cursor = 0
			}
		}
	}
	return m, nil
}

func (m *model) updateTools(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Type == tea.KeyDown:
		if m.cursor < len(m.tools)-1 {
			m.cursor++
		}
	case key.Type == tea.KeySpace:
		m.selected[m.cursor] = !m.selected[m.cursor]
	case key.Type == tea.KeyEnter:
		m.phase = phaseDone
		return m, tea.Quit
	}
	return m, nil
}

// blueprint assembles the collected answers. Empty fields stay empty; the
// generator fills in its placeholders.
func (m *model) blueprint() *blueprint.Blueprint {
	bp := &blueprint.Blueprint{
		Name:            blueprint.Slug(m.project["name"]),
		Description:     m.project["description"],
		TemplateVersion: blueprint.SupportedVersion,
		Framework:       m.framework,
		Method:          "sequential",
		Agents:          m.agents,
		Tasks:           m.tasks,
		Tools:           []blueprint.Tool{},
		Inputs:          []string{},
	}
	for i, tool := range m.tools {
		if m.selected[i] {
			bp.Tools = append(bp.Tools, blueprint.Tool{Name: tool.Name})
		}
	}
	seen := map[string]bool{}
	for _, task := range m.tasks {
		for _, name := range blueprint.InputNames(task.Description) {
			if !seen[name] {
				seen[name] = true
				bp.Inputs = append(bp.Inputs, name)
			}
		}
	}
	return bp
}
