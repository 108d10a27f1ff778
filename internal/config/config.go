package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig is everything one invocation needs. It is built once in main
// from the optional config file, the environment, and the command-line
// flags, and is read-only afterwards.
type AppConfig struct {
	URL      string `yaml:"url" env:"AIRCARD_URL"`
	Password string `yaml:"password" env:"AIRCARD_PASSWORD"`

	// sms command inputs
	SendTo  string
	Message string

	// set command inputs, raw key=value entries as given
	ConfigPairs []string

	Verbose bool
	Debug   bool
	Syslog  bool
}

// Load reads defaults from the YAML file at path (when given) or from the
// environment. Flag values are applied on top by the caller; flags always
// win.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks the two values no command can run without.
func (c *AppConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("Missing device URL")
	}
	if c.Password == "" {
		return fmt.Errorf("Missing password")
	}
	return nil
}

// Host returns the device address without scheme or trailing slash. The
// transport always speaks plain http regardless of what was typed.
func (c *AppConfig) Host() string {
	h := strings.TrimPrefix(c.URL, "http://")
	h = strings.TrimPrefix(h, "https://")
	return strings.TrimSuffix(h, "/")
}
