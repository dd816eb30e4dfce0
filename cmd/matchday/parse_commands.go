package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"matchday/internal/config"
	"matchday/internal/extract"
	"matchday/internal/oddspage"
	"matchday/internal/reconcile"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a saved page without fetching or storing",
	}
	parseCmd.AddCommand(newParseFixturesCommand(ctx))
	parseCmd.AddCommand(newParseOddsCommand(ctx))
	return parseCmd
}

type batchView struct {
	Home     []string `json:"home"`
	Away     []string `json:"away"`
	Dates    []string `json:"dates,omitempty"`
	Kickoffs []string `json:"kickoffs,omitempty"`
	Scores   []string `json:"scores,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func newParseFixturesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures FILE",
		Short: "Extract matches from a saved fixtures or results page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			batch, checkErr := parseFixturesFile(cfg, args[0])
			if batch == nil {
				return checkErr
			}
			if ctx.JSONMode() {
				view := batchView{
					Home:     nonNil(batch.Home),
					Away:     nonNil(batch.Away),
					Dates:    batch.Dates,
					Kickoffs: batch.Kickoffs,
					Scores:   batch.Scores,
				}
				if checkErr != nil {
					view.Error = checkErr.Error()
				}
				if err := writeJSON(cmd, view); err != nil {
					return err
				}
				return checkErr
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, batch.Len())
			for i := range batch.Home {
				rows = append(rows, []string{
					fmt.Sprint(i + 1),
					batch.Home[i],
					at(batch.Away, i),
					at(batch.Dates, i),
					at(batch.Kickoffs, i),
					at(batch.Scores, i),
				})
			}
			fmt.Fprintln(out, renderRows(out,
				[]string{"#", "Home", "Away", "Date", "Kickoff", "Score"},
				rows,
				[]columnAlignment{alignRight},
			))
			fmt.Fprintf(out, "%d matches\n", batch.Len())
			return checkErr
		},
	}
}

// parseFixturesFile returns a nil batch when the file cannot be read. A
// misaligned batch is returned together with its count error.
func parseFixturesFile(cfg *config.Config, path string) (*extract.Batch, error) {
	file, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return extract.Parse(file, cfg.Layout.Fixtures)
}

func newParseOddsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "odds FILE",
		Short: "List the odds groups on a saved odds page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			file, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			listing, err := oddspage.Parse(file, cfg.Layout.Odds)
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string][]string{
					"names":  nonNil(listing.Names),
					"quotes": nonNil(listing.Quotes),
				})
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(listing.Names)/reconcile.GroupSize+1)
			for k := 0; k < len(listing.Names); k += reconcile.GroupSize {
				rows = append(rows, []string{
					at(listing.Names, k),
					at(listing.Names, k+2),
					at(listing.Quotes, k),
					at(listing.Quotes, k+1),
					at(listing.Quotes, k+2),
				})
			}
			fmt.Fprintln(out, renderRows(out,
				[]string{"Home", "Away", "Home odds", "Draw odds", "Away odds"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d names, %d quotes\n", len(listing.Names), len(listing.Quotes))
			return nil
		},
	}
}

func openInput(path string) (*os.File, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return file, nil
}

func at(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
