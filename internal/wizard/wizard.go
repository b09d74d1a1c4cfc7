// Package wizard implements the interactive blueprint builder behind
// `crewforge init --wizard`: a terminal form that walks through the project,
// its agents and tasks, and a toolkit checklist, and produces a blueprint.
package wizard

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
)

// ErrCanceled is returned when the user aborts the wizard.
var ErrCanceled = errors.New("wizard canceled")

// Run walks the user through building a blueprint. defaultName seeds the
// project name prompt, typically from the init argument.
func Run(defaultName string) (*blueprint.Blueprint, error) {
	m := initialModel(defaultName)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("running wizard: %w", err)
	}
	result, ok := final.(*model)
	if !ok || result.canceled {
		return nil, ErrCanceled
	}
	return result.blueprint(), nil
}
