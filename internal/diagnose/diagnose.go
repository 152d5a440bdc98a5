// Package diagnose produces the banner-delimited toolchain report the
// launcher writes to stderr before handing off.
package diagnose

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/quinnd/mcplaunch/internal/launchenv"
)

// Banner opens and closes the diagnostic block. Both lines are
// identical; everything between them is report content.
const Banner = "=== MCP Server Debug ==="

const notFound = "not found"

// Report holds the resolved toolchain facts. None of them influence the
// launch; they exist to be written out.
type Report struct {
	// Path is the fully prepared search path.
	Path string
	// ToolPath is where the diagnostic tool resolved to, or "" when it
	// is not on the path.
	ToolPath string
	// ToolVersion is the tool's --version output, or the captured
	// failure text when the invocation failed.
	ToolVersion string
}

// versionFunc invokes a binary with --version and returns its combined
// output. A non-nil error still carries whatever output was captured.
type versionFunc func(ctx context.Context, path string) (string, error)

// Prober resolves a tool against a prepared environment and queries its
// version. The version query is bounded by a timeout so a wedged binary
// cannot stall the launch.
type Prober struct {
	timeout time.Duration
	version versionFunc
}

// New returns a Prober that runs the real binary.
func New(timeout time.Duration) *Prober {
	return &Prober{timeout: timeout, version: runVersion}
}

// Run resolves tool against the table's search path and probes its
// version. It never fails; missing tools and failed probes are recorded
// in the report instead.
func (p *Prober) Run(ctx context.Context, tool string, env *launchenv.Table) Report {
	r := Report{Path: env.Get(launchenv.PathVar)}

	path, err := lookPath(tool, r.Path)
	if err != nil {
		r.ToolVersion = notFound
		return r
	}
	r.ToolPath = path

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.version(ctx, path)
	switch {
	case err == nil:
		r.ToolVersion = out
	case out != "":
		r.ToolVersion = fmt.Sprintf("%s (%v)", out, err)
	default:
		r.ToolVersion = err.Error()
	}
	return r
}

// Write emits the five-line diagnostic block for tool: a banner, the
// three content lines, and the matching closing banner.
func (r Report) Write(w io.Writer, tool string) {
	toolPath := r.ToolPath
	if toolPath == "" {
		toolPath = notFound
	}

	fmt.Fprintln(w, Banner)
	fmt.Fprintf(w, "PATH: %s\n", r.Path)
	fmt.Fprintf(w, "which %s: %s\n", tool, toolPath)
	fmt.Fprintf(w, "%s --version: %s\n", tool, r.ToolVersion)
	fmt.Fprintln(w, Banner)
}

// lookPath resolves name against an explicit search path. The stdlib
// LookPath consults the process environment, but the launcher's
// mutations live in its own table, so the walk is done here.
func lookPath(name, path string) (string, error) {
	// Either slash marks the name as a path rather than a bare name;
	// Windows accepts both.
	if strings.ContainsAny(name, `/\`) {
		if err := executable(name); err != nil {
			return "", err
		}
		return name, nil
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if err := executable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
}

func executable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fs.ErrInvalid
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fs.ErrPermission
	}
	return nil
}

// runVersion is the default versionFunc. Stdout and stderr are captured
// together so a failing tool's complaint lands in the report.
func runVersion(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, path, "--version")

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	return strings.TrimSpace(combined.String()), err
}
