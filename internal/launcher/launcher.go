// Package launcher runs the launch sequence: prepare the toolchain
// environment, report it, and hand the process off to the runner.
package launcher

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/quinnd/mcplaunch/internal/config"
	"github.com/quinnd/mcplaunch/internal/diagnose"
	"github.com/quinnd/mcplaunch/internal/handoff"
	"github.com/quinnd/mcplaunch/internal/journal"
	"github.com/quinnd/mcplaunch/internal/launchenv"
	"github.com/quinnd/mcplaunch/internal/nvmenv"
	"github.com/quinnd/mcplaunch/internal/toolchain"
)

// Opts are the dependencies for a Launcher.
type Opts struct {
	Log    *slog.Logger
	Config *config.Config

	// Env is the environment table to prepare. Nil captures the
	// process environment.
	Env *launchenv.Table

	// Diag receives the banner-delimited diagnostic block. Nil means
	// stderr; the block must never land on stdout, which belongs to
	// the server after handoff.
	Diag io.Writer
}

// Launcher prepares and performs a single launch. Every step runs
// exactly once; only the final handoff can fail the process.
type Launcher struct {
	log  *slog.Logger
	cfg  *config.Config
	env  *launchenv.Table
	nvm  *nvmenv.Loader
	diag io.Writer

	binDir string
}

// New creates a Launcher.
func New(opts Opts) *Launcher {
	env := opts.Env
	if env == nil {
		env = launchenv.Capture()
	}
	diag := opts.Diag
	if diag == nil {
		diag = os.Stderr
	}
	return &Launcher{
		log:  opts.Log,
		cfg:  opts.Config,
		env:  env,
		nvm:  nvmenv.NewLoader(opts.Log),
		diag: diag,
	}
}

// Env returns the environment table, reflecting any preparation done
// so far.
func (l *Launcher) Env() *launchenv.Table {
	return l.env
}

// Prepare resolves the nvm directory, applies nvm.sh if present,
// resolves the pinned node version, and prepends its bin directory to
// the search path. The prepend happens even when nvm.sh is absent or
// version resolution fails; every failure in here is diagnostic-class.
func (l *Launcher) Prepare(ctx context.Context) {
	nvmDir := l.cfg.NvmDir
	if nvmDir == "" {
		nvmDir = nvmenv.Dir(l.env)
	}

	if l.nvm.Load(ctx, l.env, nvmDir) {
		l.log.Debug("applied nvm environment", "nvmDir", nvmDir)
	}

	version := l.cfg.NodeVersion
	if l.cfg.ResolveLatest {
		resolved, err := toolchain.Resolve(nvmDir, version)
		if err != nil {
			l.log.Warn("node version resolution failed, using pin as-is", "pin", version, "error", err)
		} else {
			version = resolved
		}
	}

	l.binDir = toolchain.BinDir(nvmDir, version)
	l.env.PrependPath(l.binDir)
}

// Diagnose writes the five-line diagnostic block and returns the
// underlying report. Pure observability: the result never changes what
// happens next.
func (l *Launcher) Diagnose(ctx context.Context) diagnose.Report {
	report := diagnose.New(l.cfg.VersionTimeout()).Run(ctx, l.cfg.Tool, l.env)
	report.Write(l.diag, l.cfg.Tool)
	return report
}

// Spec builds the runner invocation from the prepared environment.
func (l *Launcher) Spec() handoff.Spec {
	projectDir := l.cfg.Runner.ProjectDir
	if projectDir == "" {
		if wd, err := os.Getwd(); err == nil {
			projectDir = wd
		} else {
			projectDir = "."
		}
	}
	return handoff.NewSpec(l.cfg.Runner.Path, projectDir, l.cfg.Runner.ServerCommand, l.env.Environ())
}

// Run performs the full sequence. On success it never returns; the
// process image now belongs to the runner. The returned error is
// always a handoff failure.
func (l *Launcher) Run(ctx context.Context) error {
	l.Prepare(ctx)
	report := l.Diagnose(ctx)

	spec := l.Spec()
	if l.cfg.Journal.Enabled {
		l.record(ctx, report, spec)
	}

	return handoff.Exec(spec)
}

// record writes the launch attempt to the journal. Journal trouble is
// never allowed to stop a launch.
func (l *Launcher) record(ctx context.Context, report diagnose.Report, spec handoff.Spec) {
	path, err := l.cfg.JournalPath()
	if err != nil {
		l.log.Warn("skipping launch journal", "error", err)
		return
	}

	j, err := journal.Open(ctx, path)
	if err != nil {
		l.log.Warn("skipping launch journal", "path", path, "error", err)
		return
	}
	defer j.Close()

	if _, err := j.Record(ctx, journal.Entry{
		BinDir:      l.binDir,
		ToolPath:    report.ToolPath,
		ToolVersion: report.ToolVersion,
		Runner:      spec.Runner,
		Args:        spec.Args[1:],
	}); err != nil {
		l.log.Warn("recording launch failed", "path", path, "error", err)
	}
}
