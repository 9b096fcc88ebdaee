package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hs, err := newClient().Health(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), hs)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", hs.Status, hs.Message)
			return err
		},
	}
}
