package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/tcg-analytics/api/openapi"
	"github.com/donaldgifford/tcg-analytics/internal/api"
)

func openapiCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Example: `  tcg-analytics openapi > openapi.json
  tcg-analytics openapi --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := api.NewServer(nil, api.WithVersion(Version))

			doc, err := openapi.Render(srv.API, format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")

	return cmd
}
