package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_VERBOSE dumps every transcript checked by Expect
	Verbose bool `envconfig:"E2E_VERBOSE" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
