// Package cmd implements the CLI commands for tcg-analytics.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tcg-analytics",
	Short: "Trading card pricing gateway",
	Long: "An HTTP gateway that serves JustTCG card pricing and enriches it with\n" +
		"current eBay listings and price statistics.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file path (defaults plus environment when empty)")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(lookupCommand())
	rootCmd.AddCommand(openapiCommand())
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
