package config

// This file binds CLI flags to a Config. Flags are grouped into folders,
// naming, styles, stages and display, matching the sections of the help text.

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// BindFlags registers every option on fs, writing into cfg. Defaults shown in
// help come from the current cfg values, so call it on a [DefaultConfig].
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	defineFolderFlags(fs, cfg)
	defineNamingFlags(fs, cfg)
	defineStyleFlags(fs, cfg)
	defineStageFlags(fs, cfg)
	defineDisplayFlags(fs, cfg)
}

func defineFolderFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.InputFolder, "input-folder", "i", cfg.InputFolder, "Root folder holding one subfolder per template")
	fs.StringVarP(&cfg.OutputFolder, "output-folder", "o", cfg.OutputFolder, "Root folder for generated files")
	fs.StringVar(&cfg.MasterFolder, "master-folder", cfg.MasterFolder, "Folder holding master files (default: input folder)")
	fs.StringVarP(&cfg.TempFolder, "temp-folder", "t", cfg.TempFolder, "Folder for intermediate files")
}

func defineNamingFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.MasterFileBaseName, "master-file-base-name", cfg.MasterFileBaseName, "Master file name without language suffix")
	fs.StringVar(&cfg.MasterFileExtension, "master-file-extension", cfg.MasterFileExtension, "Master file extension")
	fs.StringVar(&cfg.TemplateFileExtension, "template-file-extension", cfg.TemplateFileExtension, "Template file extension")
	fs.StringVar(&cfg.OutputFileExtension, "output-file-extension", cfg.OutputFileExtension, "Output file extension")
	fs.StringVar(&cfg.IgnoreFolderPattern, "ignore-folder-pattern", cfg.IgnoreFolderPattern, "Regular expression of input subfolders to skip (case-insensitive)")
}

func defineStyleFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.IgnoreStyleSelector, "ignore-style-selector", cfg.IgnoreStyleSelector, "Selector of <style> elements that must not be inlined")
	fs.BoolVar(&cfg.KeepComments, "keep-comments", false, "Keep comments after inlining")
	fs.BoolVar(&cfg.KeepIDClassAttributes, "keep-id-class-attrs", false, "Keep id and class attributes after inlining")
	fs.BoolVar(&cfg.KeepStyleElements, "keep-style-elements", false, "Keep <style> elements after inlining")
}

func defineStageFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.SkipInlineCSS, "skip-inline-css", false, "Do not move CSS styles inline")
	fs.BoolVar(&cfg.SkipCleanup, "skip-cleanup", false, "Do not clean up the generated markup")
	fs.BoolVar(&cfg.SkipOutput, "skip-output", false, "Do not write output files (overrides --save-intermediate)")
	fs.BoolVar(&cfg.SaveIntermediate, "save-intermediate", false, "Save markup after each stage to the temp folder")
	fs.BoolVar(&cfg.StopOnError, "stop-on-error", cfg.StopOnError, "Stop on the first error (use --stop-on-error=false to continue)")
	fs.StringVar(&cfg.Substitutions, "substitutions", cfg.Substitutions, "'|'-delimited old=new replacements applied before saving")
	fs.StringVar(&cfg.XsltprocPath, "xsltproc", cfg.XsltprocPath, "xsltproc executable used for merging")
	fs.StringVar(&cfg.TidyPath, "tidy", cfg.TidyPath, "tidy executable used for cleanup")
}

func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress non-error console output")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&cfg.SuppressWarnings, "suppress-warnings", false, "Do not report inlining and cleanup warnings")
	fs.BoolVar(&cfg.EchoSettings, "echo-settings", false, "Log the effective settings")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Write all log entries to file")
	fs.StringVar(&cfg.ErrorFile, "error-log", "", "Write error entries to file")
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "Color output: auto | always | never")
}

// PrintUsage writes the help text. Column-aligned for readability.
func PrintUsage(w io.Writer, version string) {
	const col1 = 34 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "xslmail v" + version + " — localized HTML email template generator"},
		{"", ""},
		{"  xslmail [OPTIONS]", ""},
		{"  xslmail check", ""},
		{"", ""},
		{"Without arguments, options are read from the settings file", ""},
		{"($XSLMAIL_SETTINGS, default xslmail.env).", ""},
		{"", ""},
		{"Folders", ""},
		{"  -i, --input-folder <path>", "Template folders root (default: Input)"},
		{"  -o, --output-folder <path>", "Output root (default: Output)"},
		{"  --master-folder <path>", "Master files folder (default: input folder)"},
		{"  -t, --temp-folder <path>", "Intermediate files root (default: Temp)"},
		{"", ""},
		{"Naming", ""},
		{"  --master-file-base-name <name>", "Master name without suffix (default: Master)"},
		{"  --master-file-extension <ext>", "Master extension (default: .xslt)"},
		{"  --template-file-extension <ext>", "Template extension (default: .xml)"},
		{"  --output-file-extension <ext>", "Output extension (default: .html)"},
		{"  --ignore-folder-pattern <re>", "Subfolders to skip (default: " + DefaultIgnoreFolderPattern + ")"},
		{"", ""},
		{"Styles", ""},
		{"  --ignore-style-selector <sel>", "Styles left in place (default: #IgnoreInline)"},
		{"  --keep-comments", "Keep comments"},
		{"  --keep-id-class-attrs", "Keep id and class attributes"},
		{"  --keep-style-elements", "Keep <style> elements"},
		{"", ""},
		{"Stages", ""},
		{"  --skip-inline-css", "Do not inline CSS"},
		{"  --skip-cleanup", "Do not clean up markup"},
		{"  --skip-output", "Do not write output (implies no intermediates)"},
		{"  --save-intermediate", "Save markup after each stage"},
		{"  --stop-on-error[=false]", "Stop on first error (default: true)"},
		{"  --substitutions <list>", "Final replacements (default: " + DefaultSubstitutions + ")"},
		{"  --xsltproc <path>", "Merge engine (default: xsltproc)"},
		{"  --tidy <path>", "Cleanup engine (default: tidy)"},
		{"", ""},
		{"Display", ""},
		{"  -q, --quiet", "Errors only on the console"},
		{"  -v, --verbose", "Verbose output"},
		{"  --suppress-warnings", "Hide inlining and cleanup warnings"},
		{"  --echo-settings", "Log effective settings"},
		{"  -l, --log <path>", "Log file"},
		{"  --error-log <path>", "Error log file"},
		{"  --color <auto|always|never>", "Colored console output (default: auto)"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// colorModeValue adapts ColorMode to pflag.Value.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	mode, err := parseColorMode(s)
	if err != nil {
		return err
	}
	*c.p = mode
	return nil
}

func parseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}
