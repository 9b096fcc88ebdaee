package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/tcg-analytics/internal/api/client"
)

func searchCmd() *cobra.Command {
	var p apiclient.SearchParams

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search eBay listings through the API server",
		Example: `  tcga search "Charizard base set"
  tcga search "Black Lotus" --limit 25 --sort price
  tcga search "Pikachu" --filter conditions={NEW} --filter price=[10..50]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Query = args[0]

			md, err := newClient().Search(cmd.Context(), p)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), md)
			}
			if len(md.Listings) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No listings found.")
				return err
			}
			return printMarketplace(cmd.OutOrStdout(), md)
		},
	}
	cmd.Flags().IntVar(&p.Limit, "limit", 10, "maximum number of results (1-200)")
	cmd.Flags().IntVar(&p.Offset, "offset", 0, "number of results to skip")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "sort order (e.g. price, -price, newlyListed)")
	cmd.Flags().StringVar(&p.CategoryID, "category", "", "eBay category ID (server default 2536)")
	cmd.Flags().StringToStringVar(&p.Filters, "filter", nil, "eBay filter as key=value (repeatable)")

	return cmd
}
