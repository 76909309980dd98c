// Package reader loads tagged corpus files: one "word tag" pair per line,
// with blank lines allowed as separators.
package reader

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"github.com/qwwqe/tctags/entities/corpus"
)

// Policy decides what happens when a malformed line is found.
type Policy int

const (
	// Strict aborts the read on the first malformed line.
	Strict Policy = iota
	// Skip drops malformed lines and reports them together once the read completes.
	Skip
)

type Options struct {
	Policy Policy
	// Normalize applies Unicode NFC to words and tags.
	Normalize bool
}

// ReadFile reads the whole corpus at path into memory and parses it.
//
// Under the Skip policy a corpus is returned together with a
// *MalformedLinesError when any line was dropped.
func ReadFile(path string, opts Options) (*corpus.Corpus, error) {
	data, err := load(path)
	if err != nil {
		return nil, err
	}

	c := &corpus.Corpus{
		Name:  filepath.Base(path),
		Pairs: []corpus.Pair{},
	}

	var skipped []*MalformedLineError

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(len(data)+1, bufio.MaxScanTokenSize))

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		pair, ok, err := ParseLine(scanner.Text(), lineNum)
		if err != nil {
			var mle *MalformedLineError
			if !errors.As(err, &mle) {
				return nil, err
			}
			mle.Path = path

			if opts.Policy == Strict {
				return nil, mle
			}

			log.Warn().
				Str("path", path).
				Int("line", lineNum).
				Int("fields", mle.Fields).
				Msg("Skipping malformed corpus line")
			skipped = append(skipped, mle)
			continue
		}
		if !ok {
			continue
		}

		if opts.Normalize {
			pair.Word = norm.NFC.String(pair.Word)
			pair.Tag = norm.NFC.String(pair.Tag)
		}
		c.Pairs = append(c.Pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	log.Debug().
		Str("path", path).
		Int("lines", lineNum).
		Int("pairs", len(c.Pairs)).
		Msg("Read corpus")

	if len(skipped) > 0 {
		return c, &MalformedLinesError{Lines: skipped}
	}
	return c, nil
}

// ParseLine parses one corpus line without its terminator. ok is false for
// a blank line.
func ParseLine(text string, line int) (pair corpus.Pair, ok bool, err error) {
	if text == "" {
		return corpus.Pair{}, false, nil
	}

	fields := strings.Fields(text)
	if len(fields) != 2 {
		return corpus.Pair{}, false, &MalformedLineError{
			Line:   line,
			Text:   text,
			Fields: len(fields),
		}
	}

	return corpus.Pair{Word: fields[0], Tag: fields[1], Line: line}, true, nil
}

func load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	return data, nil
}
