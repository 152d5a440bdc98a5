//go:build !windows

package handoff

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Exec replaces the current process image with the runner. On success
// it does not return; the runner inherits the pid and its exit status
// becomes ours. The only way out of this function is a failed exec.
func Exec(spec Spec) error {
	err := unix.Exec(spec.Runner, spec.Args, spec.Env)
	return fmt.Errorf("exec %s: %w", spec.Runner, err)
}
