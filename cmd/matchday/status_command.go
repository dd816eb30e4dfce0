package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"matchday/internal/config"
	"matchday/internal/preflight"
	"matchday/internal/store"
)

type statusView struct {
	Stats  store.Stats        `json:"stats"`
	Checks []preflight.Result `json:"checks,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show stored fixture counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				view := statusView{Stats: stats}
				if check {
					view.Checks = append(preflight.RunAll(cmd.Context(), cfg), preflight.CheckSources(cmd.Context(), cfg)...)
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, view)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database: %s\n", st.Path())
				fmt.Fprintln(out, renderRows(out,
					[]string{"Fixtures", "With odds", "With results"},
					[][]string{{
						fmt.Sprint(stats.Total),
						fmt.Sprint(stats.WithOdds),
						fmt.Sprint(stats.WithResults),
					}},
					[]columnAlignment{alignRight, alignRight, alignRight},
				))
				if len(view.Checks) == 0 {
					return nil
				}
				rows := make([][]string, 0, len(view.Checks))
				for _, r := range view.Checks {
					state := "ok"
					if !r.Passed {
						state = "FAIL"
					}
					rows = append(rows, []string{r.Name, state, r.Detail})
				}
				fmt.Fprintln(out, renderRows(out, []string{"Check", "State", "Detail"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Also check directories and page sources")
	return cmd
}
