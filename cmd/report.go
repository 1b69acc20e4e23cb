package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"library/internal/reports"
)

func newReportCmd(load managerLoader) *cobra.Command {
	return &cobra.Command{
		Use:       "report [inventory|borrowing]",
		Short:     "Print a report of the seeded catalog",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"inventory", "borrowing"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := load()
			if err != nil {
				return err
			}
			switch args[0] {
			case "inventory":
				fmt.Fprint(cmd.OutOrStdout(), reports.InventoryOf(mgr))
			case "borrowing":
				fmt.Fprint(cmd.OutOrStdout(), reports.BorrowingOf(mgr))
			}
			return nil
		},
	}
}
