package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/blueprint"
	"github.com/crewforge-labs/crewforge/internal/branding"
	"github.com/crewforge-labs/crewforge/internal/framework"
	"github.com/crewforge-labs/crewforge/internal/project"
	"github.com/crewforge-labs/crewforge/internal/repo"
	"github.com/crewforge-labs/crewforge/internal/scaffold"
	"github.com/crewforge-labs/crewforge/internal/toolkit"
	"github.com/crewforge-labs/crewforge/internal/wizard"
)

var (
	initTemplate  string
	initWizard    bool
	initFramework string
	initPath      string
	initNoGit     bool
)

func init() {
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "", "Blueprint to start from: a built-in name, a local JSON file, or an https URL")
	initCmd.Flags().BoolVarP(&initWizard, "wizard", "w", false, "Build the blueprint interactively")
	initCmd.Flags().StringVar(&initFramework, "framework", "", "Override the blueprint's framework ("+strings.Join(framework.Names(), ", ")+")")
	initCmd.Flags().StringVar(&initPath, "path", "", "Parent directory to create the project in (default: current directory)")
	initCmd.Flags().BoolVar(&initNoGit, "no-git", false, "Skip git repository initialization")
	rootCmd.AddCommand(initCmd)
}

var projectNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new agent crew project",
	Long: `Create a new project directory from a blueprint.

  crewforge init my_crew                          # the hello_world blueprint
  crewforge init my_crew --template research      # a built-in blueprint
  crewforge init my_crew --template ./crew.json   # a local blueprint file
  crewforge init my_crew --wizard                 # build one interactively

Run ` + "`crewforge templates list`" + ` to see the built-in blueprints.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := blueprint.Slug(args[0])
		if !projectNamePattern.MatchString(name) {
			return fmt.Errorf("invalid project name %q: use lowercase letters, digits, - and _", args[0])
		}

		bp, err := resolveBlueprint(name)
		if err != nil {
			return err
		}
		bp.Name = name
		if initFramework != "" {
			bp.Framework = initFramework
		}
		fw, err := framework.Get(bp.Framework)
		if err != nil {
			return err
		}

		dir, err := filepath.Abs(filepath.Join(initPath, name))
		if err != nil {
			return err
		}

		data, err := scaffold.NewData(bp, buildVersion)
		if err != nil {
			return err
		}

		sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		sp.Suffix = " Generating " + name + "..."
		sp.Start()
		result, err := scaffold.Generate(fw.ScaffoldSet, data, dir)
		sp.Stop()
		if err != nil {
			return err
		}

		cfg := &project.Config{
			Framework:        bp.Framework,
			Tools:            toolNames(bp),
			CrewforgeVersion: buildVersion,
			Template:         initTemplate,
			TemplateVersion:  bp.TemplateVersion,
		}
		if err := cfg.Save(dir); err != nil {
			return err
		}
		if err := seedEnvFile(dir); err != nil {
			return err
		}

		if !initNoGit {
			if err := repo.Init(dir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		fmt.Printf("Created %s (%d files, %s framework)\n", name, len(result.Files), fw.DisplayName)
		printToolCTAs(bp)
		fmt.Println("\nNext steps:")
		fmt.Printf("    cd %s\n", filepath.Join(initPath, name))
		fmt.Println("    # fill in the API keys in .env")
		fmt.Printf("    %s run\n", branding.CLIName())
		return nil
	},
}

// resolveBlueprint picks the blueprint source: the wizard, a built-in name,
// an https URL, or a local file path.
func resolveBlueprint(name string) (*blueprint.Blueprint, error) {
	if initWizard {
		if initTemplate != "" {
			return nil, fmt.Errorf("--wizard and --template are mutually exclusive")
		}
		return wizard.Run(name)
	}
	t := initTemplate
	switch {
	case t == "":
		return blueprint.FromName("hello_world")
	case strings.HasPrefix(t, "https://"), strings.HasPrefix(t, "http://"):
		return blueprint.FromURL(t)
	case strings.ContainsAny(t, "/\\") || strings.HasSuffix(t, ".json"):
		return blueprint.FromFile(t)
	default:
		return blueprint.FromName(t)
	}
}

func toolNames(bp *blueprint.Blueprint) []string {
	names := make([]string, len(bp.Tools))
	for i, t := range bp.Tools {
		names[i] = t.Name
	}
	return names
}

// seedEnvFile copies the generated .env.example to .env so the project runs
// after the user fills in values.
func seedEnvFile(dir string) error {
	example, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	if err != nil {
		return fmt.Errorf("reading .env.example: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ".env"), example, 0600)
}

// printToolCTAs surfaces per-tool setup hints from the toolkit manifests.
func printToolCTAs(bp *blueprint.Blueprint) {
	for _, t := range bp.Tools {
		spec, err := toolkit.Get(t.Name)
		if err != nil || spec.CTA == "" {
			continue
		}
		fmt.Printf("\n%s: %s\n", spec.Name, spec.CTA)
	}
}
