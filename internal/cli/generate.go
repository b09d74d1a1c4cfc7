package cli

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/generate"
	"github.com/crewforge-labs/crewforge/internal/project"
	"github.com/crewforge-labs/crewforge/internal/repo"
)

var (
	agentRole      string
	agentGoal      string
	agentBackstory string
	agentModel     string

	taskDescription string
	taskExpected    string
	taskAgent       string
)

func init() {
	generateAgentCmd.Flags().StringVar(&agentRole, "role", "", "Agent role")
	generateAgentCmd.Flags().StringVar(&agentGoal, "goal", "", "Agent goal")
	generateAgentCmd.Flags().StringVar(&agentBackstory, "backstory", "", "Agent backstory")
	generateAgentCmd.Flags().StringVar(&agentModel, "llm", "", "Model in provider/model format, e.g. openai/gpt-4o")

	generateTaskCmd.Flags().StringVar(&taskDescription, "description", "", "Task description; {{placeholders}} become run inputs")
	generateTaskCmd.Flags().StringVar(&taskExpected, "expected-output", "", "What a good result looks like")
	generateTaskCmd.Flags().StringVar(&taskAgent, "agent", "", "Name of the agent responsible for this task")

	generateCmd.AddCommand(generateAgentCmd)
	generateCmd.AddCommand(generateTaskCmd)
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"g"},
	Short:   "Add agents and tasks to the current project",
}

var generateAgentCmd = &cobra.Command{
	Use:     "agent <name>",
	Aliases: []string{"a"},
	Short:   "Add an agent",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := blueprint.Slug(args[0])
		return withProject(func(dir string) error {
			err := generate.AddAgent(dir, blueprint.Agent{
				Name:      name,
				Role:      agentRole,
				Goal:      agentGoal,
				Backstory: agentBackstory,
				Model:     agentModel,
			})
			if err != nil {
				return err
			}
			commitSoft(dir, "Add agent "+name)
			fmt.Printf("Added agent %s\n", name)
			return nil
		})
	},
}

var generateTaskCmd = &cobra.Command{
	Use:     "task <name>",
	Aliases: []string{"t"},
	Short:   "Add a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := blueprint.Slug(args[0])
		return withProject(func(dir string) error {
			err := generate.AddTask(dir, blueprint.Task{
				Name:           name,
				Description:    taskDescription,
				ExpectedOutput: taskExpected,
				Agent:          blueprint.Slug(taskAgent),
			})
			if err != nil {
				return err
			}
			commitSoft(dir, "Add task "+name)
			fmt.Printf("Added task %s\n", name)
			return nil
		})
	},
}

// withProject locates the enclosing project, takes its lock, and runs fn.
func withProject(fn func(dir string) error) error {
	dir, err := project.Find(".")
	if err != nil {
		return err
	}
	lock, err := project.Lock(dir)
	if err != nil {
		return err
	}
	defer lock.Unlock()
	return fn(dir)
}

// commitSoft records the change in git when the project has a repository;
// projects without one are left alone, other failures only warn.
func commitSoft(dir, message string) {
	err := repo.Commit(dir, message)
	if err != nil && !errors.Is(err, git.ErrRepositoryNotExists) {
		fmt.Printf("Note: not committed to git: %v\n", err)
	}
}
