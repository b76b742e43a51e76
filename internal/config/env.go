package config

import (
	"github.com/caarlos0/env/v11"
)

// Environment holds process-level settings that are read from environment
// variables rather than from flags or the settings store.
type Environment struct {
	// SettingsFile is the settings store consulted when the program runs
	// without arguments. A .yaml/.yml extension selects YAML, anything else
	// dotenv syntax.
	SettingsFile string `env:"XSLMAIL_SETTINGS" envDefault:"xslmail.env"`

	// NoColor follows https://no-color.org: any non-empty value disables
	// colors in auto mode.
	NoColor string `env:"NO_COLOR"`
}

// LoadEnvironment parses the process environment.
func LoadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, err
	}
	return e, nil
}
