package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zirospace/zirospace-cms"
)

func newSchemaCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create missing tables for every enabled locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := cms.New(cmd.Context(), opts.config)
			if err != nil {
				return err
			}
			defer module.Close()

			if err := module.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			for _, locale := range module.Container().Locales() {
				fmt.Fprintf(cmd.OutOrStdout(), "schema ready: %s (%s)\n", locale, opts.config.StorageProvider())
			}
			return nil
		},
	}
}
