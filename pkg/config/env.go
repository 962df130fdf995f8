package config

// Config contains the runner configuration. It is populated by coalescing
// values from these sources, in descending order of precedence:
//
//  1. environment variables.
//  2. the TOML file passed to Load (or $PARAMCASE_CONFIG).
//  3. default fallbacks.
type Config struct {
	// Prefix is the name prefix that marks a template method as a test.
	Prefix string `toml:"prefix" validate:"required"`

	// Run is a regular expression selecting which registry entries run.
	// Empty selects everything.
	Run string `toml:"run"`

	// Parallel marks every generated case as parallel by default.
	Parallel bool `toml:"parallel"`

	// LogLevel is a zap level name.
	LogLevel string `toml:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`

	source string
}

// Source returns the path of the file this configuration was read from, or
// an empty string if only fallbacks and the environment were used.
func (c Config) Source() string {
	return c.source
}
