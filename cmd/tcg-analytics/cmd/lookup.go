package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/tcg-analytics/internal/config"
	"github.com/donaldgifford/tcg-analytics/pkg/logger"
)

func lookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <cardId>",
		Short: "Look up a card directly, without the HTTP server",
		Long: "Runs one card lookup in-process against the configured upstreams and\n" +
			"prints the enriched JSON document.",
		Example: `  tcg-analytics lookup 83569
  JUSTTCG_API_KEY=tcg_xxx tcg-analytics lookup 83569`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

			payload, err := newAggregator(cfg, log).Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
}
