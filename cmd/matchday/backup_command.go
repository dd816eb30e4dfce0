package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"matchday/internal/config"
	"matchday/internal/store"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a dated copy of the fixtures database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				path, err := st.Backup(cmd.Context(), cfg.Paths.BackupDir, cfg.Backup.MaxSaves)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}
}
