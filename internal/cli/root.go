package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/branding"
	"github.com/crewforge-labs/crewforge/internal/config"
	"github.com/crewforge-labs/crewforge/internal/telemetry"
	"github.com/crewforge-labs/crewforge/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// telemetryDone is closed once the usage event for this invocation has been
// sent; Execute waits on it so fast commands don't exit before the event
// leaves the process.
var telemetryDone chan struct{}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds and grows AI agent crew projects: it generates a
runnable Go project from a blueprint, then adds agents, tasks, and tools to
it by editing the project's own source.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Skip the banner for commands that manage their own update state.
		name := cmd.Name()
		if name != "update" && name != "self-update" {
			u := updater.New(buildVersion)
			u.CheckAndPrintBanner(os.Stderr, config.Dir())
		}

		done := make(chan struct{})
		telemetryDone = done
		go func() {
			defer close(done)
			telemetry.Capture(commandPath(cmd), buildVersion, nil)
		}()
	}
}

// commandPath returns "tools add" style event names without the root prefix.
func commandPath(cmd *cobra.Command) string {
	path := cmd.CommandPath()
	root := rootCmd.Name() + " "
	if len(path) > len(root) && path[:len(root)] == root {
		return path[len(root):]
	}
	return path
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	waitTelemetry(telemetryDone)
	return err
}

// waitTelemetry blocks until the usage event has been sent. The event's own
// request timeout bounds the wait; a nil handle means no event was started.
func waitTelemetry(done <-chan struct{}) {
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(3 * time.Second):
	}
}
