package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/generate"
	"github.com/crewforge-labs/crewforge/internal/project"
)

var templatesExportOutput string

func init() {
	templatesExportCmd.Flags().StringVarP(&templatesExportOutput, "output", "o", "", "Write the blueprint to a file instead of stdout")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesExportCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in blueprints and export projects as blueprints",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in blueprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := blueprint.All()
		if err != nil {
			return err
		}
		for _, bp := range all {
			fmt.Printf("%-14s %s (%s, %d agents, %d tasks)\n",
				bp.Name, bp.Description, bp.Framework, len(bp.Agents), len(bp.Tasks))
		}
		return nil
	},
}

var templatesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current project as a blueprint",
	Long: `Export the current project back into blueprint JSON, suitable for
` + "`crewforge init --template`" + `. Agents and tasks are read from the project
source in definition order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := project.Find(".")
		if err != nil {
			return err
		}
		bp, err := generate.Export(dir)
		if err != nil {
			return err
		}
		data, err := bp.ToJSON()
		if err != nil {
			return err
		}

		if templatesExportOutput == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(templatesExportOutput, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", templatesExportOutput, err)
		}
		fmt.Printf("Exported blueprint to %s\n", templatesExportOutput)
		return nil
	},
}
