package config

import (
	"net/url"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// print logs the effective configuration at debug level.
func (cfg *Config) print() {
	printableConfig := *cfg
	printableConfig.Database.URL = redactDataSource(cfg.Database.URL)

	configYAML, err := yaml.Marshal(printableConfig)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Debug().Msg("Application configuration:\n" + string(configYAML))
}

// redactDataSource hides the password of a postgres:// URL. Key/value
// connection strings are hidden entirely.
func redactDataSource(dsn string) string {
	if dsn == "" {
		return ""
	}

	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return redactedValue
	}

	return u.Redacted()
}
