package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/generate"
	"github.com/crewforge-labs/crewforge/internal/project"
	"github.com/crewforge-labs/crewforge/internal/toolkit"
)

var toolsAddAgents []string

func init() {
	toolsAddCmd.Flags().StringSliceVar(&toolsAddAgents, "agents", nil, "Only attach the tool to these agents (default: all)")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsAddCmd)
	toolsCmd.AddCommand(toolsRemoveCmd)
	rootCmd.AddCommand(toolsCmd)
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Browse the toolkit and install tools into the current project",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available tools by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := toolkit.Categories()
		if err != nil {
			return err
		}
		all, err := toolkit.All()
		if err != nil {
			return err
		}

		// Mark tools already installed when run inside a project.
		installed := map[string]bool{}
		if dir, err := project.Find("."); err == nil {
			if cfg, err := project.LoadConfig(dir); err == nil {
				for _, name := range cfg.Tools {
					installed[name] = true
				}
			}
		}

		for _, category := range categories {
			fmt.Printf("%s:\n", category)
			for _, tool := range all {
				if tool.Category != category {
					continue
				}
				mark := " "
				if installed[tool.Name] {
					mark = "*"
				}
				fmt.Printf("  %s %-18s %s\n", mark, tool.Name, tool.Description)
			}
			fmt.Println()
		}
		if len(installed) > 0 {
			fmt.Println("* installed in this project")
		}
		return nil
	},
}

var toolsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Install a tool into the current project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		return withProject(func(dir string) error {
			if err := generate.AddTool(dir, name, toolsAddAgents); err != nil {
				return err
			}
			commitSoft(dir, "Add tool "+name)
			fmt.Printf("Added tool %s\n", name)
			if spec, err := toolkit.Get(name); err == nil && spec.CTA != "" {
				fmt.Println(spec.CTA)
			}
			return nil
		})
	},
}

var toolsRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a tool from the current project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		return withProject(func(dir string) error {
			if err := generate.RemoveTool(dir, name); err != nil {
				return err
			}
			commitSoft(dir, "Remove tool "+name)
			fmt.Printf("Removed tool %s (its .env entries were kept)\n", name)
			return nil
		})
	},
}
