package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagConfig  string
	flagDebug   bool
)

func main() {
	// Optional .env carries the oracle credential; absence is fine.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "qualifier",
		Short:         "Qualify scraped job leads against an ICP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", defaultDataDir(), "engine data directory (config, caches, results)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file (default <data-dir>/config.yml)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose logging")

	root.AddCommand(newRunCmd(), newScoreCmd(), newExportCmd(), newSecretCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("LEADQUAL_DATA_DIR"); dir != "" {
		return dir
	}
	return "."
}
