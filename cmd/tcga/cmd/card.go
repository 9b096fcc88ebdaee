package cmd

import (
	"github.com/spf13/cobra"
)

func cardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "card <tcgplayerId>",
		Short: "Look up card pricing and eBay market data",
		Long: "Fetches JustTCG pricing for a card. When the server has eBay enabled,\n" +
			"current listings and a price summary are shown as well.",
		Example: `  tcga card 83569
  tcga card 83569 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().GetCard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res.Raw)
			}
			return printCard(cmd.OutOrStdout(), res)
		},
	}
}
