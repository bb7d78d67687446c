package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gumtree",
	Short: "Gumtree storefront API",
	Long:  "Storefront API for the Gumtree plywood catalog: public catalog reads, admin management, uploads, contact and chat.",
	// the default action is to serve
	RunE:         runServe,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}
