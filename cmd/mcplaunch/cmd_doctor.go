package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quinnd/mcplaunch/internal/journal"
)

func doctorCmd() *cobra.Command {
	o := &overrides{}
	var recent int
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run environment preparation and diagnostics without launching anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, cfg, err := newLauncher(cmd, o)
			if err != nil {
				return err
			}

			l.Prepare(cmd.Context())
			l.Diagnose(cmd.Context())

			// The diagnostic block is observability only, so a missing
			// tool never fails doctor.
			if recent > 0 {
				if err := printRecent(cmd, cfg.JournalPath, recent); err != nil {
					return err
				}
			}
			return nil
		},
	}
	o.bind(cmd)
	cmd.Flags().IntVar(&recent, "recent", 0, "also print the N most recent journaled launches")
	return cmd
}

func printRecent(cmd *cobra.Command, journalPath func() (string, error), limit int) error {
	path, err := journalPath()
	if err != nil {
		return err
	}

	j, err := journal.Open(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("opening launch journal: %w", err)
	}
	defer j.Close()

	entries, err := j.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "no journaled launches")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s  %s %s (tool: %s)\n",
			e.StartedAt.Format("2006-01-02 15:04:05"), e.ID, e.Runner,
			strings.Join(e.Args, " "), e.ToolVersion)
	}
	return nil
}
