package app

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete batch configuration, loadable from environment
// variables (PRICER_ prefix), flags, or YAML config files.
type Config struct {
	InputFile   string `default:"data/orders.csv" usage:"Orders CSV file, optionally gzip-compressed" flag:"input-file"`
	DatabaseURL string `usage:"PostgreSQL connection URL (PRICER_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	SQLitePath  string `usage:"Write results to this SQLite file instead of PostgreSQL" flag:"sqlite-path"`
	ResultsJSON string `default:"" usage:"Optional path for a JSON-lines copy of priced results" flag:"results-json"`
}

// LoadConfig loads configuration from environment variables, flags, and
// YAML config files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "PRICER",
		Files:     []string{"config.yaml", "/etc/pricer/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" && cfg.SQLitePath == "" {
		return nil, errors.New("a sink is required: set PRICER_DATABASE_URL, DATABASE_URL, or --sqlite-path")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables that
// use standard names like DATABASE_URL to the PRICER_-prefixed
// configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
}
