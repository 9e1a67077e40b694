package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leadqual-engine/internal/secrets"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the oracle API key in the OS keychain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <api-key>",
		Short: "Store the oracle API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.SetOracleAPIKey(args[0]); err != nil {
				return err
			}
			fmt.Println("stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset",
		Short: "Remove the oracle API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.DeleteOracleAPIKey(); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	})

	return cmd
}
