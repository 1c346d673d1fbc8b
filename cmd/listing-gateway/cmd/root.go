// Package cmd implements the CLI commands for the listing-gateway server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "listing-gateway",
	Short: "HTTP gateway to the eBay marketplace APIs",
	Long: "An HTTP gateway that proxies eBay product search, item details, and " +
		"category suggestions with cached OAuth credentials, summarizes public " +
		"listing pages, and scores listings for quality.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file path (defaults and environment only when empty)")

	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
