package repository

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Repository interface {
	// SaveTags records the tag set of a corpus. Tags already stored for the
	// corpus are kept.
	SaveTags(corpus, language string, tags []string) error
	GetTags(corpus string) ([]string, error)

	AddLexeme(lexicon, language, lexeme string, frequency int) error
	AddLexemes(lexicon, language string, lexemes []string, frequencies []int) error
	GetLexemes(lexicon, language string) (lexemes []string, frequencies []int, err error)

	Close() error
}

type RepositoryOptions struct {
	DataSourceName string
	MaxOpenConns   int
	MaxIdleConns   int
}

var (
	ErrNoDataSource          = errors.New("repository: no data source name configured")
	errMismatchedFrequencies = errors.New("repository: lexemes and frequencies differ in length")
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS corpora (name VARCHAR PRIMARY KEY, language VARCHAR NOT NULL)",
	"CREATE TABLE IF NOT EXISTS corpus_tags (corpus VARCHAR NOT NULL REFERENCES corpora(name), tag VARCHAR NOT NULL, UNIQUE(corpus, tag))",
	"CREATE TABLE IF NOT EXISTS lexemes (lexicon VARCHAR NOT NULL, language VARCHAR NOT NULL, lexeme VARCHAR NOT NULL, frequency INTEGER NOT NULL, UNIQUE(lexicon, language, lexeme))",
}

type repository struct {
	db *sql.DB
}

// Open connects to PostgreSQL and makes sure the schema exists.
func Open(options RepositoryOptions) (Repository, error) {
	if options.DataSourceName == "" {
		return nil, ErrNoDataSource
	}

	db, err := sql.Open("postgres", options.DataSourceName)
	if err != nil {
		return nil, fmt.Errorf("repository: open: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: ping: %w", err)
	}

	if options.MaxOpenConns > 0 {
		db.SetMaxOpenConns(options.MaxOpenConns)
	}
	db.SetMaxIdleConns(options.MaxIdleConns)

	if err = initDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Msg("Connected to repository")

	return &repository{db: db}, nil
}

func initDatabase(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("repository: init schema: %w", err)
		}
	}
	return nil
}

func (r *repository) SaveTags(corpus, language string, tags []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec("INSERT INTO corpora (name, language) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET language = EXCLUDED.language",
		corpus, language)
	if err != nil {
		return fmt.Errorf("repository: save corpus %s: %w", corpus, err)
	}

	for _, tag := range tags {
		_, err = tx.Exec("INSERT INTO corpus_tags (corpus, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING", corpus, tag)
		if err != nil {
			return fmt.Errorf("repository: save tag %s: %w", tag, err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetTags(corpus string) ([]string, error) {
	rows, err := r.db.Query("SELECT tag FROM corpus_tags WHERE corpus = $1 ORDER BY tag", corpus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (r *repository) AddLexeme(lexicon, language, lexeme string, frequency int) error {
	_, err := r.db.Exec("INSERT INTO lexemes (lexicon, language, lexeme, frequency) VALUES ($1, $2, $3, $4) ON CONFLICT (lexicon, language, lexeme) DO UPDATE SET frequency = EXCLUDED.frequency",
		lexicon, language, lexeme, frequency)
	return err
}

func (r *repository) AddLexemes(lexicon, language string, lexemes []string, frequencies []int) error {
	if len(lexemes) != len(frequencies) {
		return errMismatchedFrequencies
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, lexeme := range lexemes {
		_, err = tx.Exec("INSERT INTO lexemes (lexicon, language, lexeme, frequency) VALUES ($1, $2, $3, $4) ON CONFLICT (lexicon, language, lexeme) DO UPDATE SET frequency = EXCLUDED.frequency",
			lexicon, language, lexeme, frequencies[i])
		if err != nil {
			return fmt.Errorf("repository: add lexeme %s: %w", lexeme, err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetLexemes(lexicon, language string) ([]string, []int, error) {
	rows, err := r.db.Query("SELECT lexeme, frequency FROM lexemes WHERE lexicon = $1 AND language = $2 ORDER BY lexeme",
		lexicon, language)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	lexemes := []string{}
	frequencies := []int{}
	for rows.Next() {
		var lexeme string
		var frequency int
		if err := rows.Scan(&lexeme, &frequency); err != nil {
			return nil, nil, err
		}
		lexemes = append(lexemes, lexeme)
		frequencies = append(frequencies, frequency)
	}

	return lexemes, frequencies, rows.Err()
}

func (r *repository) Close() error {
	return r.db.Close()
}
