package runtime

import (
	"context"
	"fmt"
)

// Runtime executes a generated project in its directory.
type Runtime interface {
	// Run executes the project at dir with extra environment variables
	// layered over the current process environment.
	Run(ctx context.Context, dir string, env map[string]string) (*Output, error)
}

// Output captures the result of a project run.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Supported runtime identifiers.
const (
	RuntimeGo = "go"
)

// Dispatch returns the Runtime implementation for the given identifier.
// Returns an error-producing runtime for unknown values.
func Dispatch(runtime string) Runtime {
	switch runtime {
	case RuntimeGo:
		return &GoRuntime{}
	default:
		return &unknownRuntime{name: runtime}
	}
}

// unknownRuntime is returned when the runtime identifier is not recognized.
type unknownRuntime struct {
	name string
}

func (u *unknownRuntime) Run(_ context.Context, _ string, _ map[string]string) (*Output, error) {
	return nil, fmt.Errorf("unknown runtime %q: only %q is supported", u.name, RuntimeGo)
}
