package main

import (
	"os"

	"github.com/spf13/cobra"

	"library/internal/console"
)

func newConsoleCmd(load managerLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Manage the library from an interactive terminal session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, mgr, err := load()
			if err != nil {
				return err
			}
			console.New(os.Stdin, cmd.OutOrStdout(), mgr, console.IsInteractive(os.Stdin)).Run()
			return nil
		},
	}
}
