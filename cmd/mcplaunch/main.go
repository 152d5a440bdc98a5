package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quinnd/mcplaunch/internal/config"
	"github.com/quinnd/mcplaunch/internal/launcher"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mcplaunch",
		Short: "Prepare the node toolchain environment and hand off to the MCP server runner",
		// Bare "mcplaunch" behaves like "mcplaunch run": the binary is
		// a drop-in replacement for the shell wrapper it supersedes.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launch(cmd, nil)
		},
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(envCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	// stdout belongs to the server after handoff; everything of ours
	// goes to stderr.
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// overrides are the flag values shared across subcommands. Empty or
// unset values leave the parsed config untouched.
type overrides struct {
	nvmDir        string
	nodeVersion   string
	resolveLatest bool
	tool          string
	runner        string
	projectDir    string
	journal       bool
}

func (o *overrides) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.nvmDir, "nvm-dir", "", "nvm base directory (default: $NVM_DIR, then $HOME/.nvm)")
	cmd.Flags().StringVar(&o.nodeVersion, "node-version", "", "node version pin or constraint")
	cmd.Flags().BoolVar(&o.resolveLatest, "resolve-latest", false, "resolve the highest installed node version matching the pin")
	cmd.Flags().StringVar(&o.tool, "tool", "", "CLI name probed for the diagnostic block")
}

func (o *overrides) bindRunner(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.runner, "runner", "", "absolute path to the runner executable")
	cmd.Flags().StringVar(&o.projectDir, "directory", "", "project directory passed to the runner")
	cmd.Flags().BoolVar(&o.journal, "journal", false, "record this launch in the launch journal")
}

func (o *overrides) apply(cmd *cobra.Command, cfg *config.Config) {
	if o.nvmDir != "" {
		cfg.NvmDir = o.nvmDir
	}
	if o.nodeVersion != "" {
		cfg.NodeVersion = o.nodeVersion
	}
	if cmd.Flags().Changed("resolve-latest") {
		cfg.ResolveLatest = o.resolveLatest
	}
	if o.tool != "" {
		cfg.Tool = o.tool
	}
	if o.runner != "" {
		cfg.Runner.Path = o.runner
	}
	if o.projectDir != "" {
		cfg.Runner.ProjectDir = o.projectDir
	}
	if cmd.Flags().Changed("journal") {
		cfg.Journal.Enabled = o.journal
	}
}

// newLauncher parses the config, applies flag overrides when given, and
// builds a Launcher over the live process environment.
func newLauncher(cmd *cobra.Command, o *overrides) (*launcher.Launcher, *config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, nil, err
	}
	if o != nil {
		o.apply(cmd, cfg)
	}

	l := launcher.New(launcher.Opts{
		Log:    newLogger(),
		Config: cfg,
	})
	return l, cfg, nil
}
