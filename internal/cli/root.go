// Package cli wires the xslmail command line: flag parsing, the settings
// store, logging setup and the batch run.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/xslmail/internal/check"
	"github.com/backmassage/xslmail/internal/config"
	"github.com/backmassage/xslmail/internal/display"
	"github.com/backmassage/xslmail/internal/inline"
	"github.com/backmassage/xslmail/internal/logging"
	"github.com/backmassage/xslmail/internal/pipeline"
	"github.com/backmassage/xslmail/internal/tidy"
	"github.com/backmassage/xslmail/internal/xslt"
)

// errReported ends the command with a failure exit status after the cause
// has already been logged.
var errReported = errors.New("failure already reported")

// App holds what a command invocation needs beyond its flags.
type App struct {
	version string
	commit  string
	stdout  io.Writer
	stderr  io.Writer

	logOpts    []logging.Option
	newEngines func(cfg *config.Config) pipeline.Engines
}

// Execute runs the command line in args (without the program name) and
// returns the process exit status.
func Execute(ctx context.Context, args []string, version, commit string) int {
	app := &App{
		version:    version,
		commit:     commit,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		newEngines: defaultEngines,
	}
	return app.Execute(ctx, args)
}

// Execute runs args against a fresh command tree.
func (a *App) Execute(ctx context.Context, args []string) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(a.stderr, "xslmail: %s\n", logging.Flatten(err))
			fmt.Fprintln(a.stderr, "Run 'xslmail --help' for usage.")
		}
		return 1
	}
	return 0
}

func (a *App) newRootCommand() *cobra.Command {
	cfg := config.DefaultConfig()

	root := &cobra.Command{
		Use:           "xslmail",
		Short:         "Localized HTML email template generator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBatch(cmd, &cfg)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	config.BindFlags(root.PersistentFlags(), &cfg)
	root.SetHelpFunc(func(c *cobra.Command, _ []string) {
		config.PrintUsage(c.OutOrStdout(), a.version)
	})
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.InitError{Op: "invalid arguments", Err: err}
	})

	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report xsltproc and tidy availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCheck(cmd, &cfg)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "xslmail %s (%s)\n", a.version, a.commit)
		},
	})
	return root
}

// setup completes cfg and opens the logger. Without any flag on the command
// line, options come from the settings store instead.
func (a *App) setup(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	env, err := config.LoadEnvironment()
	if err != nil {
		return nil, &config.InitError{Op: "cannot read environment", Err: err}
	}
	cfg.NoColor = env.NoColor != ""

	var unknown []string
	fromStore := cmd.Flags().NFlag() == 0
	if fromStore {
		unknown, err = config.LoadSettings(cfg, env.SettingsFile)
		if err != nil {
			return nil, &config.InitError{Op: "cannot load settings", Err: err}
		}
	}

	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return nil, &config.InitError{Op: "invalid configuration", Err: err}
	}

	log, err := logging.NewLogger(cfg, a.logOpts...)
	if err != nil {
		return nil, err
	}
	if fromStore {
		log.Verbose("Options from settings file %s", env.SettingsFile)
	}
	for _, k := range unknown {
		log.Verbose("Ignoring unknown setting %q", k)
	}
	return log, nil
}

func (a *App) runBatch(cmd *cobra.Command, cfg *config.Config) error {
	log, err := a.setup(cmd, cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if !cfg.Quiet {
		display.PrintBanner(a.stdout)
	}
	log.Info("=== xslmail v%s (%s) ===", a.version, a.commit)
	log.Info("In:  %s", cfg.InputFolder)
	if cfg.SkipOutput {
		log.Warn("Output disabled, no files will be written")
	} else {
		log.Info("Out: %s", cfg.OutputFolder)
	}
	if cfg.EchoSettings {
		echoSettings(log, cfg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batch := pipeline.NewBatch(cfg, a.newEngines(cfg), log)
	// Fail fast, before the first file, if an enabled stage's engine is
	// unavailable.
	batch.SetPreflight(func() error {
		if err := check.CheckDeps(cfg); err != nil {
			return &config.InitError{Op: "missing engine", Err: err}
		}
		return nil
	})
	rep := batch.Run(ctx)
	if !rep.OK() {
		return errReported
	}
	return nil
}

func (a *App) runCheck(cmd *cobra.Command, cfg *config.Config) error {
	log, err := a.setup(cmd, cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if !check.RunCheck(cfg, log) {
		return errReported
	}
	return nil
}

// echoSettings logs the effective configuration as YAML, one entry per line.
func echoSettings(log *logging.Logger, cfg *config.Config) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		log.Warn("Cannot render settings: %v", err)
		return
	}
	log.Info("Settings:")
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		log.Info("  %s", line)
	}
}

func defaultEngines(cfg *config.Config) pipeline.Engines {
	return pipeline.Engines{
		Merger:  xslt.New(cfg.XsltprocPath),
		Inliner: inline.New(),
		Cleaner: tidy.New(cfg.TidyPath),
	}
}
