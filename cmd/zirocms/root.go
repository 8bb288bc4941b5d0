package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zirospace/zirospace-cms"
)

type options struct {
	configPath string
	config     cms.Config
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "zirocms",
		Short: "Serve and maintain the Zirospace content store",
		Long: `zirocms runs the localized content backend of the Zirospace site.

The backing store is chosen once at startup: the hosted Postgres database
(storage.provider=remote) or a local SQLite file (storage.provider=local).
Every setting can be overridden with ZIRO_ variables, nested keys joined
by a double underscore.`,
		Example: `  # Serve the API against a local SQLite file
  ZIRO_STORAGE__PROVIDER=local zirocms serve

  # Create missing tables for every enabled locale
  zirocms schema --config cms.yaml

  # Load the admin state from a running server
  zirocms admin refresh --locale pl`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cms.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.config = cfg
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("ZIRO_CONFIG"), "Path to a YAML config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newSchemaCommand(opts))
	cmd.AddCommand(newAdminCommand(opts))

	return cmd
}
