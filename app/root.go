// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-society-admin",
	Short: "GoSociety-Admin is a web-based management tool for housing societies",
	Long: `GoSociety-Admin is a web-based management backend for housing societies
and condominiums: plots, expenses, receivables, rate plans and a
role/menu/action permission system behind a JSON API.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
