// Package logging is the run's reporter. Every entry is a timestamped line
// tagged with its level. The console copy goes to stdout, or stderr for
// errors. The run log receives every entry that is emitted and the error
// log receives errors only. Both files are truncated when opened and
// written unbuffered, one write per entry.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/backmassage/xslmail/internal/config"
	"github.com/backmassage/xslmail/internal/term"
)

// Logger provides leveled, optionally colored logging with optional file
// sinks. It is safe for concurrent use; each entry is written atomically.
type Logger struct {
	mu      sync.Mutex
	quiet   bool
	verbose bool

	stdout io.Writer
	stderr io.Writer
	color  bool // Colors allowed on the console streams.
	runLog *os.File
	errLog *os.File

	now func() time.Time
}

// Option customizes a Logger.
type Option func(*Logger)

// WithOutput replaces the console streams. Colors are never written to
// replaced streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(l *Logger) {
		l.stdout = stdout
		l.stderr = stderr
		l.color = false
	}
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// NewLogger configures colors from cfg and opens the run and error logs
// when set. A file that cannot be opened is a [config.InitError]. Call
// Close when done.
func NewLogger(cfg *config.Config, opts ...Option) (*Logger, error) {
	term.Configure(cfg.ColorMode, cfg.NoColor)

	l := &Logger{
		quiet:   cfg.Quiet,
		verbose: cfg.Verbose,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		color:   true,
		now:     time.Now,
	}
	for _, o := range opts {
		o(l)
	}

	var err error
	if l.runLog, err = openLog(cfg.LogFile); err != nil {
		return nil, &config.InitError{Op: "cannot open log file " + cfg.LogFile, Err: err}
	}
	if l.errLog, err = openLog(cfg.ErrorFile); err != nil {
		l.Close()
		return nil, &config.InitError{Op: "cannot open error log file " + cfg.ErrorFile, Err: err}
	}
	return l, nil
}

// openLog creates path (and its directory), truncating an existing file.
// An empty path means no file.
func openLog(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// Close closes the log files that were opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	for _, f := range []**os.File{&l.runLog, &l.errLog} {
		if *f == nil {
			continue
		}
		if err := (*f).Close(); err != nil && first == nil {
			first = err
		}
		*f = nil
	}
	return first
}

type level struct {
	name    string
	color   func() string
	isError bool
}

var (
	levelInfo    = level{"INFO", func() string { return term.Blue }, false}
	levelSuccess = level{"SUCCESS", func() string { return term.Green }, false}
	levelWarn    = level{"WARN", func() string { return term.Yellow }, false}
	levelVerbose = level{"VERBOSE", func() string { return term.Cyan }, false}
	levelError   = level{"ERROR", func() string { return term.Red }, true}
)

func (l *Logger) line(lv level, text string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + lv.name + "] " + text + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()

	if lv.isError || !l.quiet {
		out := l.stdout
		if lv.isError {
			out = l.stderr
		}
		if c := lv.color(); c != "" && l.color {
			_, _ = io.WriteString(out, ts+" "+c+"["+lv.name+"]"+term.NC+" "+text+"\n")
		} else {
			_, _ = io.WriteString(out, plain)
		}
	}
	if l.runLog != nil {
		_, _ = io.WriteString(l.runLog, plain)
	}
	if lv.isError && l.errLog != nil {
		_, _ = io.WriteString(l.errLog, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(levelInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(levelSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow). Warnings are informational: quiet mode
// keeps them off the console but they still reach the run log.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(levelWarn, fmt.Sprintf(format, args...))
}

// Verbose logs at VERBOSE level (cyan) in verbose mode; no-op otherwise.
func (l *Logger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line(levelVerbose, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to stderr, the run log and the error log.
// Errors are never suppressed.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(levelError, fmt.Sprintf(format, args...))
}
