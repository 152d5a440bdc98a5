// Package handoff transfers control to the runner that starts the
// actual server. On platforms with a real exec, the launcher's process
// image is replaced and its pid is reused; nothing in this program runs
// after a successful handoff.
package handoff

// Spec names the runner invocation. The runner path is absolute and
// deliberately not resolved against the search path.
type Spec struct {
	// Runner is the absolute path to the runner executable.
	Runner string
	// Args is the full argv, including Args[0] == Runner.
	Args []string
	// Env is the prepared environment in KEY=VALUE form.
	Env []string
}

// NewSpec builds the runner invocation: the directory-selection flag
// with the project directory, then the trailing server command tokens.
func NewSpec(runner, projectDir string, serverCommand, env []string) Spec {
	args := []string{runner, "--directory", projectDir}
	args = append(args, serverCommand...)
	return Spec{Runner: runner, Args: args, Env: env}
}
