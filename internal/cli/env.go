package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/project"
)

var envListNoRedact bool

func init() {
	envListCmd.Flags().BoolVar(&envListNoRedact, "no-redact", false, "Show values without redaction")

	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envSetCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage the current project's .env file",
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the project's .env entries (redacted by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := project.Find(".")
		if err != nil {
			return err
		}
		env, err := project.LoadEnv(filepath.Join(dir, ".env"))
		if err != nil {
			return err
		}

		entries := env.Entries()
		if len(entries) == 0 {
			fmt.Println("(empty)")
			return nil
		}
		for _, e := range entries {
			value := e.Value
			if !envListNoRedact {
				value = project.Redact(e.Key, e.Value)
			}
			fmt.Printf("%s=%s\n", e.Key, value)
		}
		return nil
	},
}

var envSetCmd = &cobra.Command{
	Use:   "set <KEY=VALUE>",
	Short: "Append a variable to the project's .env file",
	Long: `Append a variable to the project's .env file. Existing keys are never
overwritten; edit the file directly to change a value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value, ok := strings.Cut(args[0], "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid format %q: expected KEY=VALUE", args[0])
		}

		return withProject(func(dir string) error {
			env, err := project.LoadEnv(filepath.Join(dir, ".env"))
			if err != nil {
				return err
			}
			if err := env.Set(key, value); err != nil {
				return err
			}
			if err := env.Write(); err != nil {
				return err
			}
			fmt.Printf("Set %s\n", key)
			return nil
		})
	},
}
