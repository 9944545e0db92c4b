package main

import (
	"github.com/spf13/cobra"

	"github.com/brensch/pokesim/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print the merged defaults, file and environment settings as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := config.Dump(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	})
	return cmd
}
