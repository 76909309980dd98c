// Package extractor collects the distinct part-of-speech tags of a tagged
// corpus file.
package extractor

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/qwwqe/tctags/reader"
	"github.com/qwwqe/tctags/tagset"
)

type Option func(*reader.Options)

// WithSkipMalformed drops malformed lines instead of failing. ExtractTags
// then returns the partial set along with a *reader.MalformedLinesError.
func WithSkipMalformed() Option {
	return func(o *reader.Options) {
		o.Policy = reader.Skip
	}
}

// WithNormalization applies Unicode NFC to every tag.
func WithNormalization() Option {
	return func(o *reader.Options) {
		o.Normalize = true
	}
}

// ExtractTags returns the set of distinct tags in the corpus at path.
//
// A missing or unreadable file yields a *reader.FileAccessError. By default
// the first malformed line yields a *reader.MalformedLineError and no set.
func ExtractTags(path string, opts ...Option) (*tagset.Set, error) {
	var ro reader.Options
	for _, opt := range opts {
		opt(&ro)
	}

	c, err := reader.ReadFile(path, ro)

	var skipped *reader.MalformedLinesError
	if err != nil && !errors.As(err, &skipped) {
		return nil, err
	}

	tags := tagset.New()
	tags.InsertSlice(c.Tags())

	log.Debug().
		Str("path", path).
		Int("pairs", len(c.Pairs)).
		Int("tags", tags.Len()).
		Msg("Extracted tags")

	if skipped != nil {
		return tags, skipped
	}
	return tags, nil
}

// Write prints the tags in s to w, one per line, in sorted order.
func Write(w io.Writer, s *tagset.Set) error {
	bw := bufio.NewWriter(w)
	for _, tag := range s.Sorted() {
		if _, err := fmt.Fprintln(bw, tag); err != nil {
			return err
		}
	}
	return bw.Flush()
}
