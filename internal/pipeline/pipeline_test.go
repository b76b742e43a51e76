package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/backmassage/xslmail/internal/config"
	"github.com/backmassage/xslmail/internal/engine"
)

// --- Fixtures ---

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	return writeTestFile(t, dir, name, "")
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

// testConfig returns a validated config rooted in a temp dir.
func testConfig(t *testing.T, mutate func(c *config.Config)) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputFolder = filepath.Join(root, "Input")
	cfg.OutputFolder = filepath.Join(root, "Output")
	cfg.TempFolder = filepath.Join(root, "Temp")
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.Finalize()
	require.NoError(t, cfg.Validate())
	return &cfg
}

// --- Fake engines ---

// fakeMerger renders the master and template contents into a page. A
// missing master or a template containing "BROKEN" fails like the real
// engine would.
type fakeMerger struct {
	mu    sync.Mutex
	calls []string
}

func (m *fakeMerger) Merge(_ context.Context, masterPath, templatePath string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, filepath.Base(templatePath)+"+"+filepath.Base(masterPath))
	m.mu.Unlock()

	master, err := os.ReadFile(masterPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return "", err
	}
	if strings.Contains(string(data), "BROKEN") {
		return "", errors.New("line 1:\nunexpected token")
	}
	return fmt.Sprintf("<html><head><meta charset=\"utf-8\"></head><body>%s|%s</body></html>",
		strings.TrimSpace(string(master)), strings.TrimSpace(string(data))), nil
}

type fakeInliner struct {
	warnings []string
	err      error
	got      []engine.InlineOptions
}

func (f *fakeInliner) InlineStyles(_ context.Context, markup string, opts engine.InlineOptions) (engine.Result, error) {
	f.got = append(f.got, opts)
	if f.err != nil {
		return engine.Result{}, f.err
	}
	return engine.Result{Markup: strings.Replace(markup, "<body>", "<body>[inlined]", 1), Warnings: f.warnings}, nil
}

type fakeCleaner struct {
	warnings []string
	err      error
	got      []engine.CleanOptions
}

func (f *fakeCleaner) Clean(_ context.Context, markup string, opts engine.CleanOptions) (engine.Result, error) {
	f.got = append(f.got, opts)
	if f.err != nil {
		return engine.Result{}, f.err
	}
	return engine.Result{Markup: strings.Replace(markup, "<body>", "<body>[clean]", 1), Warnings: f.warnings}, nil
}

func fakeEngines() (Engines, *fakeMerger, *fakeInliner, *fakeCleaner) {
	m, i, c := &fakeMerger{}, &fakeInliner{}, &fakeCleaner{}
	return Engines{Merger: m, Inliner: i, Cleaner: c}, m, i, c
}

// --- Recording reporter ---

type entry struct {
	level string
	text  string
}

type recorder struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recorder) add(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level, fmt.Sprintf(format, args...)})
}

func (r *recorder) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recorder) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recorder) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recorder) Verbose(f string, a ...interface{}) { r.add("VERBOSE", f, a...) }
func (r *recorder) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }

func (r *recorder) lines(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e.text)
		}
	}
	return out
}
