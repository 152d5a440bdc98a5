package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func envCmd() *cobra.Command {
	o := &overrides{}
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the prepared launch environment as KEY=VALUE lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, _, err := newLauncher(cmd, o)
			if err != nil {
				return err
			}

			l.Prepare(cmd.Context())
			for _, kv := range l.Env().Environ() {
				fmt.Fprintln(cmd.OutOrStdout(), kv)
			}
			return nil
		},
	}
	o.bind(cmd)
	return cmd
}
