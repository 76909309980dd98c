package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/qwwqe/tctags/config"
	"github.com/qwwqe/tctags/extractor"
	"github.com/qwwqe/tctags/fetcher"
	"github.com/qwwqe/tctags/lexicon"
	"github.com/qwwqe/tctags/reader"
	"github.com/qwwqe/tctags/repository"
)

const corpusFilePermissions = 0o644

// openRepository is replaced in tests.
var openRepository = repository.Open

func repositoryOptions(cfg *config.Config) repository.RepositoryOptions {
	return repository.RepositoryOptions{
		DataSourceName: cfg.Database.URL,
		MaxOpenConns:   cfg.Database.MaxOpenConns,
		MaxIdleConns:   cfg.Database.MaxIdleConns,
	}
}

func newFlagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet("tctags "+name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	return flags
}

// parseArgs parses args and requires exactly one positional argument.
func parseArgs(flags *flag.FlagSet, args []string, what string) (string, error) {
	if err := flags.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if flags.NArg() != 1 {
		return "", fmt.Errorf("%w: expected one %s", errUsage, what)
	}
	return flags.Arg(0), nil
}

func tagsCommand(cfg *config.Config, args []string, stdout io.Writer) error {
	flags := newFlagSet("tags")
	skipMalformed := flags.Bool("skip-malformed", cfg.Corpus.SkipMalformed, "skip malformed lines instead of failing")
	normalize := flags.Bool("normalize", cfg.Corpus.Normalize, "apply Unicode NFC to tags")
	saveAs := flags.String("save", "", "save the tag set to the repository under this corpus name")

	path, err := parseArgs(flags, args, "corpus file")
	if err != nil {
		return err
	}

	var opts []extractor.Option
	if *skipMalformed {
		opts = append(opts, extractor.WithSkipMalformed())
	}
	if *normalize {
		opts = append(opts, extractor.WithNormalization())
	}

	tags, err := extractor.ExtractTags(path, opts...)
	var skipped *reader.MalformedLinesError
	if errors.As(err, &skipped) {
		log.Warn().
			Str("path", path).
			Ints("lines", skipped.LineNumbers()).
			Msg("Malformed lines were skipped")
	} else if err != nil {
		return err
	}

	if err := extractor.Write(stdout, tags); err != nil {
		return fmt.Errorf("writing tags: %w", err)
	}

	if *saveAs == "" {
		return nil
	}

	repo, err := openRepository(repositoryOptions(cfg))
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.SaveTags(*saveAs, cfg.Corpus.Language, tags.Sorted()); err != nil {
		return err
	}

	log.Info().
		Str("corpus", *saveAs).
		Int("tags", tags.Len()).
		Msg("Saved tag set")

	return nil
}

func poplexCommand(cfg *config.Config, args []string, stdout io.Writer) error {
	flags := newFlagSet("poplex")
	name := flags.String("name", cfg.Lexicon.Name, "lexicon name")
	save := flags.Bool("save", false, "load and update the lexicon in the repository")
	list := flags.Bool("list", false, "print every lexeme with its frequency")

	path, err := parseArgs(flags, args, "corpus file")
	if err != nil {
		return err
	}

	lex := lexicon.NewLexicon(*name, cfg.Corpus.Language)

	if *save {
		repo, err := openRepository(repositoryOptions(cfg))
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := lex.LoadRepository(repo); err != nil {
			return err
		}
	}

	policy := reader.Strict
	if cfg.Corpus.SkipMalformed {
		policy = reader.Skip
	}

	c, err := reader.ReadFile(path, reader.Options{Policy: policy, Normalize: cfg.Corpus.Normalize})
	var skipped *reader.MalformedLinesError
	if errors.As(err, &skipped) {
		log.Warn().
			Str("path", path).
			Ints("lines", skipped.LineNumbers()).
			Msg("Malformed lines were skipped")
	} else if err != nil {
		return err
	}

	if err := lex.AddPairs(c.Pairs); err != nil {
		return err
	}

	if *list {
		lexemes, frequencies := lex.Lexemes()
		for i, lexeme := range lexemes {
			fmt.Fprintf(stdout, "%s\t%d\n", lexeme, frequencies[i])
		}
	}

	fmt.Fprintf(stdout, "Lexicon \"%s\" has %d entries.\n", lex.Name(), lex.NumEntries())
	return nil
}

func fetchCommand(cfg *config.Config, args []string, stdout io.Writer) error {
	flags := newFlagSet("fetch")
	output := flags.String("o", "", "write the corpus to this file instead of stdout")

	uri, err := parseArgs(flags, args, "url")
	if err != nil {
		return err
	}

	f := fetcher.NewFetcher(fetcher.FetcherOptions{
		CacheDir:       cfg.Fetch.CacheDir,
		AllowedDomains: cfg.Fetch.AllowedDomains,
		Selector:       cfg.Fetch.Selector,
		UserAgent:      cfg.Fetch.UserAgent,
	})

	body, err := f.Fetch(uri)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = stdout.Write(body)
		return err
	}

	if err := os.WriteFile(*output, body, corpusFilePermissions); err != nil {
		return fmt.Errorf("saving corpus: %w", err)
	}

	log.Info().
		Str("url", uri).
		Str("path", *output).
		Int("bytes", len(body)).
		Msg("Saved corpus")

	return nil
}
