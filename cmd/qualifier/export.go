package main

import (
	"github.com/spf13/cobra"

	"leadqual-engine/internal/store"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Re-export the result table to CSV without running the batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			path := out
			if path == "" {
				path = a.settings.Output.File
			}
			if err := store.ExportCSV(cmd.Context(), a.db, a.path(path)); err != nil {
				return err
			}
			a.log.Info("exported", "file", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output CSV path (default from config.yml)")
	return cmd
}
