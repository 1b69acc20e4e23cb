package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"library/internal/config"
	"library/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "library",
		Short:        "Track a small library's catalog and loans",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv(config.EnvConfigPath),
		"path to a YAML config file (defaults to the built-in configuration)")

	loadManager := func() (*config.Config, services.LibraryManager, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[INFO] mode: %s, seed books: %d", cfg.Mode, len(cfg.Seed))
		return cfg, services.NewLibraryManager(cfg.Seed), nil
	}

	root.AddCommand(
		newServeCmd(loadManager),
		newConsoleCmd(loadManager),
		newReportCmd(loadManager),
	)
	return root
}

type managerLoader func() (*config.Config, services.LibraryManager, error)
