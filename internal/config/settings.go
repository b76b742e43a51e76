package config

// This file implements the persisted settings store used when the program is
// started without arguments. Keys map to Config fields through an explicit
// table; matching ignores case, '-', '_' and '.', so "input-folder",
// "INPUT_FOLDER" and "InputFolder" are the same key.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type setter func(c *Config, value string) error

func stringSetter(field func(c *Config) *string) setter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

func boolSetter(field func(c *Config) *bool) setter {
	return func(c *Config, value string) error {
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(value)))
		if err != nil {
			return fmt.Errorf("not a boolean: %q", value)
		}
		*field(c) = b
		return nil
	}
}

// settingsTable lists every recognized key.
var settingsTable = map[string]setter{
	"echosettings":          boolSetter(func(c *Config) *bool { return &c.EchoSettings }),
	"errorlog":              stringSetter(func(c *Config) *string { return &c.ErrorFile }),
	"ignorefolderpattern":   stringSetter(func(c *Config) *string { return &c.IgnoreFolderPattern }),
	"ignorestyleselector":   stringSetter(func(c *Config) *string { return &c.IgnoreStyleSelector }),
	"inputfolder":           stringSetter(func(c *Config) *string { return &c.InputFolder }),
	"keepcomments":          boolSetter(func(c *Config) *bool { return &c.KeepComments }),
	"keepidclassattrs":      boolSetter(func(c *Config) *bool { return &c.KeepIDClassAttributes }),
	"keepstyleelements":     boolSetter(func(c *Config) *bool { return &c.KeepStyleElements }),
	"log":                   stringSetter(func(c *Config) *string { return &c.LogFile }),
	"masterfileextension":   stringSetter(func(c *Config) *string { return &c.MasterFileExtension }),
	"masterfilebasename":    stringSetter(func(c *Config) *string { return &c.MasterFileBaseName }),
	"masterfolder":          stringSetter(func(c *Config) *string { return &c.MasterFolder }),
	"skipinlinecss":         boolSetter(func(c *Config) *bool { return &c.SkipInlineCSS }),
	"skipoutput":            boolSetter(func(c *Config) *bool { return &c.SkipOutput }),
	"skipcleanup":           boolSetter(func(c *Config) *bool { return &c.SkipCleanup }),
	"suppresswarnings":      boolSetter(func(c *Config) *bool { return &c.SuppressWarnings }),
	"outputfileextension":   stringSetter(func(c *Config) *string { return &c.OutputFileExtension }),
	"outputfolder":          stringSetter(func(c *Config) *string { return &c.OutputFolder }),
	"quiet":                 boolSetter(func(c *Config) *bool { return &c.Quiet }),
	"saveintermediate":      boolSetter(func(c *Config) *bool { return &c.SaveIntermediate }),
	"stoponerror":           boolSetter(func(c *Config) *bool { return &c.StopOnError }),
	"tempfolder":            stringSetter(func(c *Config) *string { return &c.TempFolder }),
	"templatefileextension": stringSetter(func(c *Config) *string { return &c.TemplateFileExtension }),
	"verbose":               boolSetter(func(c *Config) *bool { return &c.Verbose }),
	"substitutions":         stringSetter(func(c *Config) *string { return &c.Substitutions }),
	"xsltproc":              stringSetter(func(c *Config) *string { return &c.XsltprocPath }),
	"tidy":                  stringSetter(func(c *Config) *string { return &c.TidyPath }),
	"color": func(c *Config, value string) error {
		mode, err := parseColorMode(value)
		if err != nil {
			return err
		}
		c.ColorMode = mode
		return nil
	},
}

// legacyKeys maps key names used by earlier settings files to their current
// table form.
var legacyKeys = map[string]string{
	"errorfile":                "errorlog",
	"logfile":                  "log",
	"masterfilename":           "masterfilebasename",
	"keepidandclassattributes": "keepidclassattrs",
	"noinlinecss":              "skipinlinecss",
	"notidy":                   "skipcleanup",
	"keepstyleelelments":       "keepstyleelements",
	"nooutput":                 "skipoutput",
	"nowarnings":               "suppresswarnings",
	"savetempfiles":            "saveintermediate",
}

func lookupSetter(key string) (setter, bool) {
	k := normalizeKey(key)
	if current, ok := legacyKeys[k]; ok {
		k = current
	}
	set, ok := settingsTable[k]
	return set, ok
}

// normalizeKey folds a settings key to its table form.
func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		switch r {
		case '-', '_', '.', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ReadSettings reads a settings file into a key/value map. Files ending in
// .yaml or .yml are parsed as YAML mappings; anything else as dotenv.
func ReadSettings(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		values := make(map[string]string, len(raw))
		for k, v := range raw {
			if v == nil {
				values[k] = ""
				continue
			}
			values[k] = fmt.Sprint(v)
		}
		return values, nil
	default:
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, err
		}
		return values, nil
	}
}

// ApplySettings assigns recognized keys to cfg in sorted key order and
// returns the keys it did not recognize. A value that cannot be parsed is an
// error naming the key.
func ApplySettings(cfg *Config, values map[string]string) ([]string, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var unknown []string
	for _, k := range keys {
		set, ok := lookupSetter(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if err := set(cfg, values[k]); err != nil {
			return unknown, fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return unknown, nil
}

// LoadSettings reads path and applies it to cfg. A missing file leaves cfg
// unchanged and is not an error.
func LoadSettings(cfg *Config, path string) ([]string, error) {
	values, err := ReadSettings(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return ApplySettings(cfg, values)
}
