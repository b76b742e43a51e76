package check

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/xslmail/internal/config"
)

type mockLogger struct {
	lines map[string][]string
}

func newMockLogger() *mockLogger { return &mockLogger{lines: map[string][]string{}} }

func (m *mockLogger) add(level, f string, a ...interface{}) {
	m.lines[level] = append(m.lines[level], fmt.Sprintf(f, a...))
}

func (m *mockLogger) Info(f string, a ...interface{})    { m.add("info", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("success", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("warn", f, a...) }
func (m *mockLogger) Verbose(f string, a ...interface{}) { m.add("verbose", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("error", f, a...) }

// fakeTool writes an executable script that prints version on stdout.
func fakeTool(t *testing.T, name, version string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	p := filepath.Join(t.TempDir(), name)
	script := "#!/bin/sh\necho\necho '" + version + "'\n"
	require.NoError(t, os.WriteFile(p, []byte(script), 0o755))
	return p
}

func TestCheckDeps(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	xsltproc := fakeTool(t, "xsltproc", "Using libxml 20913")
	tidy := fakeTool(t, "tidy", "HTML Tidy version 5.8.0")

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"all present", func(c *config.Config) {}, nil},
		{"no xsltproc", func(c *config.Config) { c.XsltprocPath = missing }, ErrXsltprocNotFound},
		{"no tidy", func(c *config.Config) { c.TidyPath = missing }, ErrTidyNotFound},
		{"no tidy without cleanup", func(c *config.Config) { c.TidyPath = missing; c.SkipCleanup = true }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.XsltprocPath = xsltproc
			cfg.TidyPath = tidy
			tt.mutate(&cfg)

			err := CheckDeps(&cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestRunCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XsltprocPath = fakeTool(t, "xsltproc", "Using libxml 20913, libxslt 10134")
	cfg.TidyPath = fakeTool(t, "tidy", "HTML Tidy version 5.8.0")
	log := newMockLogger()

	assert.True(t, RunCheck(&cfg, log))
	assert.Equal(t, []string{
		"xsltproc: Using libxml 20913, libxslt 10134",
		"tidy: HTML Tidy version 5.8.0",
	}, log.lines["success"])
	assert.Empty(t, log.lines["error"])
}

func TestRunCheck_Missing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XsltprocPath = filepath.Join(t.TempDir(), "xsltproc")
	cfg.TidyPath = filepath.Join(t.TempDir(), "tidy")
	cfg.SkipCleanup = true
	log := newMockLogger()

	assert.False(t, RunCheck(&cfg, log))
	require.Len(t, log.lines["error"], 1)
	assert.Contains(t, log.lines["error"][0], "xsltproc not found")
	require.Len(t, log.lines["warn"], 1)
	assert.Contains(t, log.lines["warn"][0], "not needed")
}
