package wizard

import (
	"fmt"
	"strings"
)

func (m *model) View() string {
	var b strings.Builder

	switch m.phase {
	case phaseProject:
		b.WriteString(titleStyle.Render("New project") + "\n\n")
		m.renderField(&b)
	case phaseFramework:
		b.WriteString(titleStyle.Render("Framework") + "\n\n")
		for i, name := range m.frameworks {
			cursor := "  "
			if i == m.cursor {
				cursor = promptStyle.Render("> ")
			}
			fmt.Fprintf(&b, "%s%s\n", cursor, name)
		}
		b.WriteString("\n" + faintStyle.Render("↑/↓ to choose, enter to confirm, ctrl+c to cancel"))
	case phaseAgent:
		fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("Agent %d", len(m.agents)+1)))
		m.renderField(&b)
	case phaseTask:
		fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("Task %d", len(m.tasks)+1)))
		m.renderField(&b)
	case phaseAgentMore:
		m.renderYesNo(&b, "Add another agent?")
	case phaseTaskMore:
		m.renderYesNo(&b, "Add another task?")
	case phaseTools:
		b.WriteString(titleStyle.Render("Tools") + "\n\n")
		for i, tool := range m.tools {
			cursor := "  "
			if i == m.cursor {
				cursor = promptStyle.Render("> ")
			}
			mark := "[ ]"
			if m.selected[i] {
				mark = "[x]"
			}
			fmt.Fprintf(&b, "%s%s %-18s %s\n", cursor, mark, tool.Name, faintStyle.Render(tool.Description))
		}
		b.WriteString("\n" + faintStyle.Render("space to toggle, enter to finish, ctrl+c to cancel"))
	case phaseDone:
		return ""
	}
	return b.String()
}

func (m *model) renderField(b *strings.Builder) {
	f := m.fields[m.idx]
	b.WriteString(promptStyle.Render(f.prompt) + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("enter to continue, ctrl+c to cancel"))
}

func (m *model) renderYesNo(b *strings.Builder, question string) {
	yes, no := "  yes", "> no"
	if m.yes {
		yes, no = "> yes", "  no"
	}
	b.WriteString(titleStyle.Render(question) + "\n\n")
	b.WriteString(promptStyle.Render(yes) + "\n")
	b.WriteString(promptStyle.Render(no) + "\n")
	b.WriteString("\n" + faintStyle.Render("y/n or arrows, enter to confirm"))
}
