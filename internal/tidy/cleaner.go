package tidy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/xslmail/internal/engine"
)

// DefaultExecutable is the tidy command looked up on PATH.
const DefaultExecutable = "tidy"

// Tidy exit statuses: 1 means warnings were reported, 2 means errors were
// reported. With force-output both still produce a document.
const (
	exitWarnings = 1
	exitErrors   = 2
)

// Cleaner runs tidy. The zero value uses [DefaultExecutable].
type Cleaner struct {
	Executable string
}

// New returns a Cleaner for the given executable; empty means the default.
func New(executable string) *Cleaner {
	return &Cleaner{Executable: executable}
}

func (c *Cleaner) executable() string {
	if c.Executable == "" {
		return DefaultExecutable
	}
	return c.Executable
}

// Clean pipes markup through tidy and returns the cleaned document with the
// diagnostics tidy printed.
func (c *Cleaner) Clean(ctx context.Context, markup string, opts engine.CleanOptions) (engine.Result, error) {
	cmd := exec.CommandContext(ctx, c.executable(), Args(opts)...)
	cmd.Stdin = strings.NewReader(markup)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return engine.Result{}, ctx.Err()
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return engine.Result{}, fmt.Errorf("run %s: %w", c.executable(), err)
		}
		if code := exitErr.ExitCode(); code != exitWarnings && code != exitErrors {
			return engine.Result{}, fmt.Errorf("%s exited with status %d: %s", c.executable(), code, summarize(stderr.String()))
		}
	}

	if stdout.Len() == 0 {
		return engine.Result{}, fmt.Errorf("%s produced no output: %s", c.executable(), summarize(stderr.String()))
	}
	return engine.Result{
		Markup:   stdout.String(),
		Warnings: Diagnostics(stderr.String(), opts.Quiet),
	}, nil
}

// Args returns the tidy options matching opts. Input is read from stdin and
// the result written to stdout. The doctype is left as the master wrote it.
func Args(opts engine.CleanOptions) []string {
	return []string{
		"--tidy-mark", "no",
		"--doctype", "user",
		"--char-encoding", "utf8",
		"--output-html", "yes",
		"--ncr", "yes",
		"--numeric-entities", "no",
		"--preserve-entities", "no",
		"--quote-ampersand", "yes",
		"--force-output", "yes",
		"--show-errors", "1000000",
		"--show-warnings", yesNo(!opts.SuppressWarnings),
		"--quiet", yesNo(opts.Quiet),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
