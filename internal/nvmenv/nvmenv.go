// Package nvmenv loads the environment mutations an nvm installation
// would apply when sourced into a shell.
//
// The launcher cannot source a shell script into its own process, so it
// runs the script in a child bash, captures the child's resulting
// environment, and merges the changed variables back into the launch
// environment. A missing script is a silent no-op; a failing script is
// logged and otherwise ignored.
package nvmenv

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quinnd/mcplaunch/internal/launchenv"
)

const scriptName = "nvm.sh"

// Variables the child shell defines for itself. They describe the probe
// process, not the nvm environment, and are never merged back.
var shellNoise = map[string]bool{
	"_":      true,
	"SHLVL":  true,
	"PWD":    true,
	"OLDPWD": true,
}

// Dir resolves the nvm base directory: NVM_DIR when set, otherwise
// .nvm under the home variable. An unset HOME degenerates to the
// relative path ".nvm"; that is accepted silently.
func Dir(env *launchenv.Table) string {
	if dir := env.Get("NVM_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(env.Get("HOME"), ".nvm")
}

// probeFunc runs script in a child shell with the given environment and
// returns the child's environment as NUL-delimited KEY=VALUE pairs.
type probeFunc func(ctx context.Context, script string, environ []string) ([]byte, error)

// Loader applies nvm.sh environment mutations to a launch environment.
type Loader struct {
	log   *slog.Logger
	probe probeFunc
}

// NewLoader returns a Loader that probes with a real child bash.
func NewLoader(log *slog.Logger) *Loader {
	return &Loader{log: log, probe: runProbe}
}

// Load looks for nvm.sh under nvmDir and, if present, merges the
// environment it produces into env. It reports whether the script was
// found and applied. Probe failures are logged and swallowed; they
// never abort the launch.
func (l *Loader) Load(ctx context.Context, env *launchenv.Table, nvmDir string) bool {
	script := filepath.Join(nvmDir, scriptName)

	info, err := os.Stat(script)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	out, err := l.probe(ctx, script, env.Environ())
	if err != nil {
		l.log.Warn("nvm probe failed, continuing without it", "script", script, "error", err)
		return false
	}

	merge(env, out)
	return true
}

// merge applies new or changed variables from the NUL-delimited child
// environment, skipping shell bookkeeping variables.
func merge(env *launchenv.Table, out []byte) {
	for _, kv := range bytes.Split(out, []byte{0}) {
		key, val, ok := strings.Cut(string(kv), "=")
		if !ok || key == "" || shellNoise[key] {
			continue
		}
		if cur, set := env.Lookup(key); set && cur == val {
			continue
		}
		env.Set(key, val)
	}
}

func runProbe(ctx context.Context, script string, environ []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "bash", "-c", `. "$1" >/dev/null 2>&1 && env -0`, "bash", script)
	cmd.Env = environ

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}
