package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"matchday/internal/config"
	"matchday/internal/store"
	"matchday/internal/update"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var opts update.Options

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Fetch fixtures, odds and results and store them",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				runner, err := update.NewRunner(cfg, st, logger)
				if err != nil {
					return err
				}
				summary, runErr := runner.Run(cmd.Context(), opts)
				if ctx.JSONMode() {
					if err := writeJSON(cmd, summary); err != nil {
						return err
					}
					return runErr
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s\n", summary.RunID)
				fmt.Fprintf(out, "Fixtures extracted: %d\n", summary.Extracted)
				fmt.Fprintf(out, "Inserted: %d (already stored: %d)\n", summary.Inserted, summary.Duplicates)
				if !opts.SkipOdds {
					fmt.Fprintf(out, "Odds matched: %d, created: %d, stored: %d\n",
						summary.OddsMatched, summary.OddsCreated, summary.OddsUpdated)
				}
				if !opts.SkipResults {
					fmt.Fprintf(out, "Results stored: %d (unknown fixtures: %d)\n",
						summary.ResultsUpdated, summary.ResultsMissing)
				}
				if summary.Rejected > 0 {
					fmt.Fprintf(out, "Rejected records: %d\n", summary.Rejected)
				}
				return runErr
			})
		},
	}

	cmd.Flags().BoolVar(&opts.SkipOdds, "skip-odds", false, "Do not fetch or store odds")
	cmd.Flags().BoolVar(&opts.SkipResults, "skip-results", false, "Do not fetch or store results")
	return cmd
}
