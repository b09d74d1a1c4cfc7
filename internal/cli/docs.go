package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewforge-labs/crewforge/internal/branding"
)

func init() {
	rootCmd.AddCommand(docsCmd)
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Print the documentation URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(branding.DocsURL())
		return nil
	},
}
