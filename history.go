package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Raikerian/go-telegram-cardbot/internal/store"
)

func newHistoryCommand(configPath *string) *cobra.Command {
	var (
		chatID int64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var st *store.Store
			stop, err := startTool(cmd.Context(), *configPath, store.Module, fx.Populate(&st))
			if err != nil {
				return err
			}
			defer stop()

			scans, err := st.Recent(cmd.Context(), chatID, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(scans) == 0 {
				fmt.Fprintln(out, "No scans recorded.")

				return nil
			}

			fmt.Fprintln(out, renderScans(scans))

			return nil
		},
	}

	cmd.Flags().Int64Var(&chatID, "chat", 0, "Only show scans from this chat ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of scans to show")

	return cmd
}
