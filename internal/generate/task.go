package generate

import (
	"fmt"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/framework"
)

// Placeholder texts for blank task fields.
const (
	placeholderDescription    = "Add your description here"
	placeholderExpectedOutput = "Add your expected_output here"
	placeholderAgent          = "default_agent"
)

// AddTask appends the task to config/tasks.yaml and splices a new marked
// task method into the entrypoint: after the last existing task method, or
// after the task-definitions anchor when the project has none.
func AddTask(dir string, task blueprint.Task) error {
	if task.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if task.Description == "" {
		task.Description = placeholderDescription
	}
	if task.ExpectedOutput == "" {
		task.ExpectedOutput = placeholderExpectedOutput
	}
	if task.Agent == "" {
		task.Agent = placeholderAgent
	}

	_, fw, err := loadProject(dir)
	if err != nil {
		return err
	}

	if err := appendMapping(tasksYAML(dir), task.Name, []yamlField{
		{Name: "description", Value: task.Description, Folded: true},
		{Name: "expected_output", Value: task.ExpectedOutput, Folded: true},
		{Name: "agent", Value: task.Agent},
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
		//crewforge:task
		func (%s *%s) %s() *Task {
			return &Task{
				Config: %s.config.Tasks[%q],
				Agent:  %s.%s(),
			}
		}
	`, fw.Receiver, crew.Name, blueprint.MethodName(task.Name), fw.Receiver, task.Name,
		fw.Receiver, blueprint.MethodName(task.Agent)))

	// New tasks run last: insert after the final task method so source
	// order keeps matching execution order.
	tasks := file.MarkedMethods(crew.Name, framework.MarkerTask)
	if len(tasks) > 0 {
		if err := file.Insert(tasks[len(tasks)-1].End, snippet); err != nil {
			return err
		}
	} else if err := file.InsertAfterTag(framework.TaskAnchor, snippet); err != nil {
		return err
	}
	return file.Save()
}
