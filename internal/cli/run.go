package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/framework"
	"github.com/crewforge-labs/crewforge/internal/project"
	"github.com/crewforge-labs/crewforge/internal/runtime"
)

var (
	runInputs []string
	runWatch  bool
)

func init() {
	runCmd.Flags().StringArrayVarP(&runInputs, "input", "i", nil, "Input key=value pairs (can be specified multiple times)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Rerun the crew when project files change")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the current project's crew",
	Long: `Run the crew defined in the enclosing project with ` + "`go run .`" + `.

Task descriptions may reference {{placeholders}}; provide their values as
key=value pairs via --input flags. Inputs are passed to the crew process as
environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := project.Find(".")
		if err != nil {
			return err
		}
		if err := validateProject(dir); err != nil {
			return err
		}

		env, err := parseInputArgs(runInputs)
		if err != nil {
			return err
		}

		rt := runtime.Dispatch(runtime.RuntimeGo)

		if runWatch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(os.Stderr, "Watching %s (ctrl+c to stop)\n", dir)
			if err := runtime.Watch(ctx, rt, dir, env, os.Stderr); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		}

		output, err := rt.Run(context.Background(), dir, env)
		if err != nil {
			return err
		}
		if output.ExitCode != 0 {
			return fmt.Errorf("crew exited with code %d", output.ExitCode)
		}
		return nil
	},
}

// validateProject checks the entrypoint before handing the project to
// `go run`, so structural problems surface as typed errors instead of raw
// compiler output.
func validateProject(dir string) error {
	cfg, err := project.LoadConfig(dir)
	if err != nil {
		return err
	}
	fw, err := framework.Get(cfg.Framework)
	if err != nil {
		return err
	}
	return fw.ValidateProject(dir)
}

// parseInputArgs parses --input key=value flags into a map.
func parseInputArgs(inputs []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, input := range inputs {
		parts := strings.SplitN(input, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid input format %q: expected key=value", input)
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			return nil, fmt.Errorf("invalid input format %q: key cannot be empty", input)
		}
		result[key] = strings.TrimSpace(parts[1])
	}
	return result, nil
}
