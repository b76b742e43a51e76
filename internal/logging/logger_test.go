package logging

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/xslmail/internal/config"
)

var fixedClock = WithClock(func() time.Time {
	return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
})

func newTestLogger(t *testing.T, mutate func(c *config.Config)) (*Logger, *bytes.Buffer, *bytes.Buffer, config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "run.log")
	cfg.ErrorFile = filepath.Join(dir, "logs", "error.log")
	if mutate != nil {
		mutate(&cfg)
	}
	var stdout, stderr bytes.Buffer
	l, err := NewLogger(&cfg, WithOutput(&stdout, &stderr), fixedClock)
	require.NoError(t, err)
	return l, &stdout, &stderr, cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestLogger_Routing(t *testing.T) {
	l, stdout, stderr, cfg := newTestLogger(t, nil)
	l.Info("info %d", 1)
	l.Success("done")
	l.Warn("careful")
	l.Verbose("hidden")
	l.Error("broken: %s", "x")
	require.NoError(t, l.Close())

	assert.Equal(t,
		"2024-05-01 12:30:00 [INFO] info 1\n"+
			"2024-05-01 12:30:00 [SUCCESS] done\n"+
			"2024-05-01 12:30:00 [WARN] careful\n",
		stdout.String())
	assert.Equal(t, "2024-05-01 12:30:00 [ERROR] broken: x\n", stderr.String())

	run := readFile(t, cfg.LogFile)
	assert.Contains(t, run, "[INFO] info 1")
	assert.Contains(t, run, "[ERROR] broken: x")
	assert.NotContains(t, run, "hidden")

	assert.Equal(t, "2024-05-01 12:30:00 [ERROR] broken: x\n", readFile(t, cfg.ErrorFile))
}

func TestLogger_Quiet(t *testing.T) {
	l, stdout, stderr, cfg := newTestLogger(t, func(c *config.Config) {
		c.Quiet = true
		c.Verbose = true
	})
	l.Info("info")
	l.Warn("warn")
	l.Verbose("detail")
	l.Error("error")
	require.NoError(t, l.Close())

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "[ERROR] error")

	run := readFile(t, cfg.LogFile)
	assert.Contains(t, run, "[INFO] info")
	assert.Contains(t, run, "[WARN] warn")
	assert.Contains(t, run, "[VERBOSE] detail")
	assert.Contains(t, run, "[ERROR] error")
}

func TestLogger_Verbose(t *testing.T) {
	l, stdout, _, _ := newTestLogger(t, func(c *config.Config) { c.Verbose = true })
	l.Verbose("detail %s", "here")
	require.NoError(t, l.Close())
	assert.Contains(t, stdout.String(), "[VERBOSE] detail here")
}

func TestLogger_FilesTruncated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.LogFile = path
	l, err := NewLogger(&cfg, WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)
	l.Info("fresh")
	require.NoError(t, l.Close())

	got := readFile(t, path)
	assert.NotContains(t, got, "previous run")
	assert.Contains(t, got, "fresh")
}

func TestLogger_NoFiles(t *testing.T) {
	cfg := config.DefaultConfig()
	var stdout bytes.Buffer
	l, err := NewLogger(&cfg, WithOutput(&stdout, &bytes.Buffer{}))
	require.NoError(t, err)
	l.Info("console only")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.Contains(t, stdout.String(), "console only")
}

func TestNewLogger_UnopenableFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := config.DefaultConfig()
	cfg.ErrorFile = filepath.Join(blocker, "error.log")
	_, err := NewLogger(&cfg)
	var initErr *config.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Contains(t, initErr.Op, "error log")
}

func TestFlattenAndChain(t *testing.T) {
	root := errors.New("line 3:\nunexpected end of file")
	mid := fmt.Errorf("cannot load master Master.xslt: %w", root)
	top := fmt.Errorf("folder Hello: %w", mid)

	assert.Equal(t, "folder Hello: cannot load master Master.xslt: line 3: unexpected end of file", Flatten(top))
	assert.Equal(t, []string{
		"folder Hello",
		"cannot load master Master.xslt",
		"line 3: unexpected end of file",
	}, Chain(top))

	assert.Equal(t, "", Flatten(nil))
	assert.Nil(t, Chain(nil))
}
