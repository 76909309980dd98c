package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// validation errors.
var (
	errInvalidLogLevel     = errors.New("invalid Log.Level")
	errInvalidLogFormat    = errors.New("invalid Log.Format, must be console or json")
	errInvalidLanguage     = errors.New("invalid Corpus.Language")
	errEmptyLexiconName    = errors.New("Lexicon.Name cannot be empty")
	errNegativeConnections = errors.New("database connection limits cannot be negative")
)

var logFormats = []string{"console", "json"}

// validateAndSet validates the configuration and canonicalizes some fields.
func (cfg *Config) validateAndSet() error {
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || cfg.Log.Level == "" {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if !slices.Contains(logFormats, cfg.Log.Format) {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	tag, err := language.Parse(cfg.Corpus.Language)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", errInvalidLanguage, cfg.Corpus.Language, err)
	}
	cfg.Corpus.Language = tag.String()

	if cfg.Lexicon.Name == "" {
		return errEmptyLexiconName
	}

	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return errNegativeConnections
	}

	if cfg.Fetch.Selector == "" {
		cfg.Fetch.Selector = "pre"
	}

	return nil
}
