package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"matchday/internal/config"
	"matchday/internal/store"
)

func newFixturesCommand(ctx *commandContext) *cobra.Command {
	fixturesCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Inspect stored fixtures",
	}
	fixturesCmd.AddCommand(newFixturesListCommand(ctx))
	fixturesCmd.AddCommand(newFixturesShowCommand(ctx))
	return fixturesCmd
}

func newFixturesListCommand(ctx *commandContext) *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				rows, err := st.List(cmd.Context(), store.Filter{Team: team})
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					if rows == nil {
						rows = []*store.Row{}
					}
					return writeJSON(cmd, rows)
				}
				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No fixtures stored")
					return nil
				}
				headers := []string{"UID", "Home", "Away", "Date", "Kickoff", "Odds (H/D/A)", "Score"}
				table := make([][]string, 0, len(rows))
				for _, r := range rows {
					table = append(table, []string{r.UID, r.Home, r.Away, r.Date, r.Kickoff, oddsText(r), scoreText(r)})
				}
				fmt.Fprintln(out, renderRows(out, headers, table, []columnAlignment{
					alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight,
				}))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "Only fixtures involving this team code")
	return cmd
}

func newFixturesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show UID",
		Short: "Show one stored fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := strings.ToUpper(strings.TrimSpace(args[0]))
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				row, err := st.Get(cmd.Context(), uid)
				if err != nil {
					return err
				}
				if row == nil {
					return fmt.Errorf("fixture %s not found", uid)
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, row)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "UID: %s\n", row.UID)
				fmt.Fprintf(out, "Match: %s vs. %s\n", row.Home, row.Away)
				fmt.Fprintf(out, "Captured: %s\n", row.CapturedAt)
				fmt.Fprintf(out, "Date: %s\n", orDash(row.Date))
				fmt.Fprintf(out, "Kickoff: %s\n", orDash(row.Kickoff))
				fmt.Fprintf(out, "Odds: %s\n", orDash(oddsText(row)))
				fmt.Fprintf(out, "Score: %s\n", orDash(scoreText(row)))
				fmt.Fprintf(out, "Updated: %s\n", row.UpdatedAt)
				return nil
			})
		},
	}
}

func oddsText(r *store.Row) string {
	if !r.HasOdds() {
		return ""
	}
	return strings.Join([]string{
		strconv.FormatFloat(*r.OddsHome, 'f', -1, 64),
		strconv.FormatFloat(*r.OddsDraw, 'f', -1, 64),
		strconv.FormatFloat(*r.OddsAway, 'f', -1, 64),
	}, " / ")
}

func scoreText(r *store.Row) string {
	if !r.HasResult() {
		return ""
	}
	return fmt.Sprintf("%d-%d (%s)", *r.ScoreHome, *r.ScoreAway, r.Outcome)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
