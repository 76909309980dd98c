// Package config loads tctags settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
)

// DefaultConfigFile is read when neither -config nor TCTAGS_CONFIGFILE is set.
const DefaultConfigFile = "./tctags.yaml"

// Config holds the process-wide settings of tctags.
type Config struct {
	Log struct {
		Level   string   `env:"TCTAGS_LOG_LEVEL,overwrite" yaml:"level"`
		Outputs []string `env:"TCTAGS_LOG_OUTPUTS,overwrite" yaml:"outputs"`
		Format  string   `env:"TCTAGS_LOG_FORMAT,overwrite" yaml:"format"`
	} `yaml:"log"`

	Corpus struct {
		// Language is a BCP 47 tag recorded alongside saved tag sets and lexicons.
		Language      string `env:"TCTAGS_LANGUAGE,overwrite" yaml:"language"`
		SkipMalformed bool   `env:"TCTAGS_SKIP_MALFORMED,overwrite" yaml:"skipMalformed"`
		Normalize     bool   `env:"TCTAGS_NORMALIZE,overwrite" yaml:"normalize"`
	} `yaml:"corpus"`

	Lexicon struct {
		Name string `env:"TCTAGS_LEXICON_NAME,overwrite" yaml:"name"`
	} `yaml:"lexicon"`

	Database struct {
		URL          string `env:"TCTAGS_DATABASE_URL,overwrite" yaml:"url"`
		MaxOpenConns int    `env:"TCTAGS_DATABASE_MAX_OPEN_CONNS,overwrite" yaml:"maxOpenConns"`
		MaxIdleConns int    `env:"TCTAGS_DATABASE_MAX_IDLE_CONNS,overwrite" yaml:"maxIdleConns"`
	} `yaml:"database"`

	Fetch struct {
		CacheDir       string   `env:"TCTAGS_FETCH_CACHE_DIR,overwrite" yaml:"cacheDir"`
		AllowedDomains []string `env:"TCTAGS_FETCH_ALLOWED_DOMAINS,overwrite" yaml:"allowedDomains"`
		Selector       string   `env:"TCTAGS_FETCH_SELECTOR,overwrite" yaml:"selector"`
		UserAgent      string   `env:"TCTAGS_FETCH_USER_AGENT,overwrite" yaml:"userAgent"`
	} `yaml:"fetch"`
}

// SetDefaults fills in the values used when nothing else is configured.
func (cfg *Config) SetDefaults() {
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"

	cfg.Corpus.Language = "und"

	cfg.Lexicon.Name = "Tagged Corpus Lexicon"

	cfg.Database.MaxOpenConns = 50
	cfg.Database.MaxIdleConns = 0

	cfg.Fetch.Selector = "pre"
}

// Load builds a Config from defaults, the YAML file and the environment, in
// that order, then validates it and configures the global logger.
//
// The file path comes from flagPath, then TCTAGS_CONFIGFILE, then
// DefaultConfigFile. Only an explicitly named file must exist.
func Load(flagPath string) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	configFilePath, required := flagPath, flagPath != ""
	if !required {
		if envVar := os.Getenv("TCTAGS_CONFIGFILE"); envVar != "" {
			configFilePath, required = envVar, true
		} else {
			configFilePath = DefaultConfigFile
		}
	}

	if err := cfg.readYAML(configFilePath, required); err != nil {
		return nil, fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return nil, fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()
	cfg.print()

	return cfg, nil
}

var errConfigFileMissing = errors.New("configuration file does not exist")
