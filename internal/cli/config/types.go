// Package config provides configuration management for the SchemaKit CLI.
//
// Configuration is layered with koanf, precedence (highest to lowest):
// flags > environment variables > config file > defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	SchemasDir   string `koanf:"schemas_dir"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`

	// ProjectRoot is derived, never read from the file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultSchemasDir = "schemas"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config file names, checked in order.
const (
	ConfigFileName    = "schemakit.yaml"
	ConfigFileNameAlt = "schemakit.yml"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. SCHEMAKIT_SCHEMAS_DIR.
const EnvPrefix = "SCHEMAKIT_"
