//go:build windows

package handoff

import (
	"fmt"
	"os"
	"os/exec"
)

// Exec approximates process replacement where no real exec exists: the
// runner is spawned with inherited stdio and the launcher exits with
// the child's status, so callers observe the same exit code either way.
func Exec(spec Spec) error {
	cmd := exec.Command(spec.Runner, spec.Args[1:]...)
	cmd.Env = spec.Env
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("exec %s: %w", spec.Runner, err)
	}
	os.Exit(0)
	return nil
}
