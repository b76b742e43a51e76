// Package config holds runtime configuration: defaults, CLI flag binding,
// the persisted settings store, and validation. A Config is built once at
// startup and treated as read-only by every other package.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultIgnoreFolderPattern excludes folders whose name starts with a
// non-alphanumeric character or an underscore, and the reserved names
// common, include, master and shared.
const DefaultIgnoreFolderPattern = `^[^\p{L}\p{N}]|^_|^common$|^include$|^master$|^shared$`

// DefaultSubstitutions maps the copyright, registered and trademark glyphs
// to their named HTML entities.
const DefaultSubstitutions = "©=&copy;|®=&reg;|™=&trade;"

// InitError reports a configuration problem detected before any processing
// starts: a malformed invocation, an unparsable settings value, or a log file
// that cannot be opened. It is always fatal.
type InitError struct {
	Op  string
	Err error
}

func (e *InitError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error { return e.Err }

// Substitution is one literal replacement applied to the final markup.
type Substitution struct {
	Old string
	New string
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by CLI flags or the settings store, then completed by [Config.Finalize]
// and checked by [Config.Validate].
type Config struct {
	// Folder roots.
	InputFolder  string `yaml:"input-folder"`
	OutputFolder string `yaml:"output-folder"`
	MasterFolder string `yaml:"master-folder"` // Default: InputFolder.
	TempFolder   string `yaml:"temp-folder"`

	// File naming.
	MasterFileBaseName    string `yaml:"master-file-base-name"` // Default: "Master".
	MasterFileExtension   string `yaml:"master-file-extension"` // Default: ".xslt".
	TemplateFileExtension string `yaml:"template-file-extension"`
	OutputFileExtension   string `yaml:"output-file-extension"`
	IgnoreFolderPattern   string `yaml:"ignore-folder-pattern"`

	// Style inlining.
	IgnoreStyleSelector   string `yaml:"ignore-style-selector"` // Default: "#IgnoreInline".
	KeepComments          bool   `yaml:"keep-comments"`
	KeepIDClassAttributes bool   `yaml:"keep-id-class-attrs"`
	KeepStyleElements     bool   `yaml:"keep-style-elements"`

	// Stage switches.
	SkipInlineCSS    bool   `yaml:"skip-inline-css"`
	SkipCleanup      bool   `yaml:"skip-cleanup"`
	SkipOutput       bool   `yaml:"skip-output"`
	SaveIntermediate bool   `yaml:"save-intermediate"` // Forced false when SkipOutput is set.
	StopOnError      bool   `yaml:"stop-on-error"`     // Default: true.
	Substitutions    string `yaml:"substitutions"`

	// Display and logging.
	Quiet            bool      `yaml:"quiet"`
	Verbose          bool      `yaml:"verbose"`
	SuppressWarnings bool      `yaml:"suppress-warnings"`
	EchoSettings     bool      `yaml:"echo-settings"`
	LogFile          string    `yaml:"log"`
	ErrorFile        string    `yaml:"error-log"`
	ColorMode        ColorMode `yaml:"color"`
	NoColor          bool      `yaml:"-"` // From the environment (NO_COLOR); disables auto colors.

	// External engines.
	XsltprocPath string `yaml:"xsltproc"`
	TidyPath     string `yaml:"tidy"`

	// Derived by Validate.
	ignoreRegexp *regexp.Regexp
	substitution []Substitution
}

// DefaultConfig returns a Config with every documented default applied.
func DefaultConfig() Config {
	return Config{
		InputFolder:           "Input",
		OutputFolder:          "Output",
		TempFolder:            "Temp",
		MasterFileBaseName:    "Master",
		MasterFileExtension:   ".xslt",
		TemplateFileExtension: ".xml",
		OutputFileExtension:   ".html",
		IgnoreFolderPattern:   DefaultIgnoreFolderPattern,
		IgnoreStyleSelector:   "#IgnoreInline",
		StopOnError:           true,
		Substitutions:         DefaultSubstitutions,
		ColorMode:             ColorAuto,
		XsltprocPath:          "xsltproc",
		TidyPath:              "tidy",
	}
}

// Finalize applies the rules that depend on more than one option: the master
// folder falls back to the input folder, and no intermediate files are saved
// when no output is produced.
func (c *Config) Finalize() {
	if c.MasterFolder == "" {
		c.MasterFolder = c.InputFolder
	}
	if c.SkipOutput {
		c.SaveIntermediate = false
	}
}

// Validate checks folder and extension values, compiles the ignore pattern
// (case-insensitive) and parses the substitution list.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputFolder) == "" {
		return errors.New("input folder must not be empty")
	}
	if !c.SkipOutput && strings.TrimSpace(c.OutputFolder) == "" {
		return errors.New("output folder must not be empty")
	}
	if c.SaveIntermediate && strings.TrimSpace(c.TempFolder) == "" {
		return errors.New("temp folder must not be empty when saving intermediate files")
	}
	if c.TemplateFileExtension == "" {
		return errors.New("template file extension must not be empty")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	c.ignoreRegexp = nil
	if c.IgnoreFolderPattern != "" {
		re, err := regexp.Compile("(?i)" + c.IgnoreFolderPattern)
		if err != nil {
			return fmt.Errorf("invalid ignore folder pattern %q: %w", c.IgnoreFolderPattern, err)
		}
		c.ignoreRegexp = re
	}

	subs, err := ParseSubstitutions(c.Substitutions)
	if err != nil {
		return err
	}
	c.substitution = subs
	return nil
}

// IgnoreRegexp returns the compiled ignore-folder pattern, or nil when no
// pattern is configured. Valid only after [Config.Validate].
func (c *Config) IgnoreRegexp() *regexp.Regexp { return c.ignoreRegexp }

// SubstitutionList returns the parsed substitutions in configured order.
// Valid only after [Config.Validate].
func (c *Config) SubstitutionList() []Substitution { return c.substitution }

// ParseSubstitutions parses a '|'-delimited list of old=new pairs. Empty
// entries are ignored; the first '=' separates old from new, so the
// replacement itself may contain '='.
func ParseSubstitutions(raw string) ([]Substitution, error) {
	var subs []Substitution
	for _, item := range strings.Split(raw, "|") {
		if item == "" {
			continue
		}
		oldText, newText, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid substitution %q (use old=new)", item)
		}
		if oldText == "" {
			return nil, fmt.Errorf("invalid substitution %q (empty search text)", item)
		}
		subs = append(subs, Substitution{Old: oldText, New: newText})
	}
	return subs, nil
}
