package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"matchday/internal/config"
	"matchday/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export PATH",
		Short: "Export stored fixtures as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				values, err := st.Export(cmd.Context(), target, overwrite)
				if errors.Is(err, store.ErrExists) {
					return fmt.Errorf("%s already exists (use --overwrite to replace it)", target)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d values to %s\n", values, target)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}
