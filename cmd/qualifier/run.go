package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"leadqual-engine/internal/engine"
	"leadqual-engine/internal/leads"
)

func newRunCmd() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Qualify every lead in the input table, resuming from the last checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			input := inputFile
			if input == "" {
				input = a.settings.Input.File
			}
			rows, err := leads.ReadCSV(a.path(input))
			if err != nil {
				return err
			}
			a.log.Info("input loaded", "rows", len(rows), "file", input)

			batch := engine.NewBatch(a.eng, a.caches, a.db, engine.BatchOptions{
				SaveEveryN: a.settings.Batch.SaveEveryN,
				JitterMin:  time.Duration(a.settings.Batch.JitterMinMS) * time.Millisecond,
				JitterMax:  time.Duration(a.settings.Batch.JitterMaxMS) * time.Millisecond,
				LockPath:   filepath.Join(a.dataDir, "run.lock"),
				OutputCSV:  a.path(a.settings.Output.File),
			}, a.log)

			results, err := batch.Run(cmd.Context(), rows)
			if err != nil {
				return err
			}

			qualified := 0
			for _, r := range results {
				if r.Decision == "Qualified" {
					qualified++
				}
			}
			a.log.Info("done", "results", len(results), "qualified", qualified)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFile, "input", "", "input CSV (default from config.yml)")
	return cmd
}
