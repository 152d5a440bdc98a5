package main

import (
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	o := &overrides{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Prepare the environment, emit diagnostics, and exec the runner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launch(cmd, o)
		},
	}
	o.bind(cmd)
	o.bindRunner(cmd)
	return cmd
}

// launch performs the full sequence. It returns only when the final
// handoff fails; on success the runner owns the process.
func launch(cmd *cobra.Command, o *overrides) error {
	l, _, err := newLauncher(cmd, o)
	if err != nil {
		return err
	}
	return l.Run(cmd.Context())
}
