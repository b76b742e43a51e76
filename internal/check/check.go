// Package check provides system diagnostics (the check command) and
// pre-run dependency validation (CheckDeps) for the xsltproc and tidy
// engines.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/xslmail/internal/config"
)

// Sentinel errors returned by CheckDeps when a required engine is missing.
var (
	ErrXsltprocNotFound = errors.New("xsltproc not found")
	ErrTidyNotFound     = errors.New("tidy not found (use --skip-cleanup to run without it)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Verbose(string, ...interface{})
	Error(string, ...interface{})
}

// tool describes one external engine and how to ask it for its version.
type tool struct {
	name        string
	path        string
	versionArgs []string
	required    bool
}

func tools(cfg *config.Config) []tool {
	return []tool{
		{name: "xsltproc", path: cfg.XsltprocPath, versionArgs: []string{"--version"}, required: true},
		{name: "tidy", path: cfg.TidyPath, versionArgs: []string{"-version"}, required: !cfg.SkipCleanup},
	}
}

// RunCheck prints the availability and version of every engine. It is
// informational only and reports whether all required engines were found.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := true
	for _, t := range tools(cfg) {
		resolved, err := exec.LookPath(t.path)
		if err != nil {
			if t.required {
				log.Error("%s not found (%s)", t.name, t.path)
				ok = false
			} else {
				log.Warn("%s not found (%s), not needed with current settings", t.name, t.path)
			}
			continue
		}
		log.Verbose("%s: %s", t.name, resolved)

		version, err := toolVersion(resolved, t.versionArgs...)
		if err != nil {
			log.Warn("%s found but version query failed: %v", t.name, err)
			continue
		}
		log.Success("%s: %s", t.name, version)
	}
	return ok
}

// toolVersion runs the version command and returns its first non-empty
// output line. Some tools print their version on stderr.
func toolVersion(path string, args ...string) (string, error) {
	out, err := exec.Command(path, args...).CombinedOutput()
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", errors.New("no version output")
}

// CheckDeps is the pre-run validation: xsltproc must always be runnable,
// tidy only when the cleanup stage is enabled. Returns a sentinel error
// wrapped with the configured path on failure.
func CheckDeps(cfg *config.Config) error {
	for _, t := range tools(cfg) {
		if !t.required {
			continue
		}
		if _, err := exec.LookPath(t.path); err != nil {
			sentinel := ErrXsltprocNotFound
			if t.name == "tidy" {
				sentinel = ErrTidyNotFound
			}
			return fmt.Errorf("%w: %s", sentinel, t.path)
		}
	}
	return nil
}
