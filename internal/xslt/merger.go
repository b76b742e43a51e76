package xslt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// DefaultExecutable is the xsltproc command looked up on PATH.
const DefaultExecutable = "xsltproc"

// Merger runs xsltproc. The zero value uses [DefaultExecutable].
type Merger struct {
	Executable string
}

// New returns a Merger for the given executable; empty means the default.
func New(executable string) *Merger {
	return &Merger{Executable: executable}
}

func (m *Merger) executable() string {
	if m.Executable == "" {
		return DefaultExecutable
	}
	return m.Executable
}

// Args returns the xsltproc argument list for one merge. Network access is
// disabled so a stylesheet cannot pull remote resources.
func Args(masterPath, templatePath string) []string {
	return []string{"--nonet", masterPath, templatePath}
}

// Merge applies masterPath to templatePath and returns the result as UTF-8
// markup that declares UTF-8.
func (m *Merger) Merge(ctx context.Context, masterPath, templatePath string) (string, error) {
	for _, p := range []string{masterPath, templatePath} {
		if _, err := os.Stat(p); err != nil {
			return "", err
		}
	}

	cmd := exec.CommandContext(ctx, m.executable(), Args(masterPath, templatePath)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return "", &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("run %s: %w", m.executable(), err)
	}

	out, err := ToUTF8(stdout.Bytes())
	if err != nil {
		return "", fmt.Errorf("decode transform output: %w", err)
	}
	return DeclareUTF8(string(out)), nil
}
