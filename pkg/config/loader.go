package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/testground/paramcase/pkg/logging"
)

const (
	EnvConfigFile = "PARAMCASE_CONFIG"
	EnvPrefix     = "PARAMCASE_PREFIX"
	EnvRun        = "PARAMCASE_RUN"
	EnvParallel   = "PARAMCASE_PARALLEL"
	EnvLogLevel   = "LOG_LEVEL"

	DefaultPrefix   = "Test"
	DefaultLogLevel = "warn"
)

var configValidator = validator.New()

// Default returns a configuration holding only the fallbacks.
func Default() *Config {
	return &Config{
		Prefix:   DefaultPrefix,
		LogLevel: DefaultLogLevel,
	}
}

// Load builds a configuration from fallbacks, the optional TOML file at path
// and the environment. An empty path falls back to $PARAMCASE_CONFIG; a
// missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		switch _, err := os.Stat(path); {
		case err == nil:
			if _, err := toml.DecodeFile(path, c); err != nil {
				return nil, fmt.Errorf("found config at %s, but failed to parse: %w", path, err)
			}
			c.source = path
			logging.S().Debugf("config loaded from: %s", path)
		case os.IsNotExist(err):
			logging.S().Debugf("no config found at %s; running with defaults", path)
		default:
			return nil, fmt.Errorf("failed to stat config at %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvPrefix); ok {
		c.Prefix = v
	}
	if v, ok := os.LookupEnv(EnvRun); ok {
		c.Run = v
	}
	if v, ok := os.LookupEnv(EnvParallel); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvParallel, v, err)
		}
		c.Parallel = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Matcher(); err != nil {
		return err
	}
	return nil
}

// Matcher compiles the Run filter. It returns nil when no filter is set.
func (c *Config) Matcher() (*regexp.Regexp, error) {
	if c.Run == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Run)
	if err != nil {
		return nil, fmt.Errorf("invalid run filter %q: %w", c.Run, err)
	}
	return re, nil
}
