// Package cli implements the surveyctl command-line tool using Cobra. It
// covers the operational tasks that don't need the HTTP server running:
// schema migration, table listing, template generation, and direct file
// imports.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command and attaches all sub-commands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "surveyctl",
		Short: "Operations tool for the socio-economic survey portal",
		Long: `surveyctl manages the survey portal database from the command line.
It can apply the schema, list importable tables, generate entry templates,
and run bulk imports without going through the HTTP API.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newTablesCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}
