package reader_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwwqe/tctags/entities/corpus"
	"github.com/qwwqe/tctags/reader"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantPair corpus.Pair
		wantOK   bool
		fields   int
	}{
		{name: "pair", text: "dog NOUN", wantPair: corpus.Pair{Word: "dog", Tag: "NOUN", Line: 3}, wantOK: true},
		{name: "tab separated", text: "狗\tNa", wantPair: corpus.Pair{Word: "狗", Tag: "Na", Line: 3}, wantOK: true},
		{name: "surrounding space", text: "  run   VERB ", wantPair: corpus.Pair{Word: "run", Tag: "VERB", Line: 3}, wantOK: true},
		{name: "blank", text: ""},
		{name: "whitespace only", text: "   ", fields: 0},
		{name: "single token", text: "onlyoneword", fields: 1},
		{name: "three tokens", text: "New York PROPN", fields: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pair, ok, err := reader.ParseLine(tt.text, 3)
			if tt.wantOK || tt.text == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOK, ok)
				assert.Equal(t, tt.wantPair, pair)
				return
			}

			var mle *reader.MalformedLineError
			require.ErrorAs(t, err, &mle)
			assert.False(t, ok)
			assert.Equal(t, 3, mle.Line)
			assert.Equal(t, tt.fields, mle.Fields)
			assert.Equal(t, tt.text, mle.Text)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Run("pairs keep line numbers", func(t *testing.T) {
		path := writeCorpus(t, "cat NOUN\n\nruns VERB\n")

		c, err := reader.ReadFile(path, reader.Options{})
		require.NoError(t, err)

		assert.Equal(t, "corpus.txt", c.Name)
		assert.Equal(t, []corpus.Pair{
			{Word: "cat", Tag: "NOUN", Line: 1},
			{Word: "runs", Tag: "VERB", Line: 3},
		}, c.Pairs)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		path := writeCorpus(t, "cat NOUN\r\n\r\nruns VERB\r\n")

		c, err := reader.ReadFile(path, reader.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"NOUN", "VERB"}, c.Tags())
	})

	t.Run("last line without terminator", func(t *testing.T) {
		path := writeCorpus(t, "cat NOUN\nfast ADV")

		c, err := reader.ReadFile(path, reader.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"NOUN", "ADV"}, c.Tags())
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeCorpus(t, "")

		c, err := reader.ReadFile(path, reader.Options{})
		require.NoError(t, err)
		assert.Empty(t, c.Pairs)
	})

	t.Run("long line", func(t *testing.T) {
		word := make([]byte, 200*1024)
		for i := range word {
			word[i] = 'a'
		}
		path := writeCorpus(t, string(word)+" NOUN\n")

		c, err := reader.ReadFile(path, reader.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"NOUN"}, c.Tags())
	})

	t.Run("normalization", func(t *testing.T) {
		// "e" followed by a combining acute accent composes to U+00E9.
		path := writeCorpus(t, "cafe\u0301 NOUN\n")

		c, err := reader.ReadFile(path, reader.Options{Normalize: true})
		require.NoError(t, err)
		assert.Equal(t, "caf\u00e9", c.Pairs[0].Word)

		c, err = reader.ReadFile(path, reader.Options{})
		require.NoError(t, err)
		assert.Equal(t, "cafe\u0301", c.Pairs[0].Word)
	})
}

func TestReadFile_Malformed(t *testing.T) {
	content := "cat NOUN\nonlyoneword\nruns VERB\nthree token line\n"

	t.Run("strict stops at first malformed line", func(t *testing.T) {
		path := writeCorpus(t, content)

		c, err := reader.ReadFile(path, reader.Options{Policy: reader.Strict})
		assert.Nil(t, c)

		var mle *reader.MalformedLineError
		require.ErrorAs(t, err, &mle)
		assert.Equal(t, 2, mle.Line)
		assert.Equal(t, 1, mle.Fields)
		assert.Equal(t, path, mle.Path)
	})

	t.Run("skip reports every malformed line", func(t *testing.T) {
		path := writeCorpus(t, content)

		c, err := reader.ReadFile(path, reader.Options{Policy: reader.Skip})
		require.NotNil(t, c)
		assert.Equal(t, []string{"NOUN", "VERB"}, c.Tags())

		var mles *reader.MalformedLinesError
		require.ErrorAs(t, err, &mles)
		assert.Equal(t, []int{2, 4}, mles.LineNumbers())
		assert.Contains(t, mles.Error(), "lines 2, 4")
	})
}

func TestReadFile_FileAccess(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.txt")

		_, err := reader.ReadFile(path, reader.Options{})

		var fae *reader.FileAccessError
		require.ErrorAs(t, err, &fae)
		assert.Equal(t, path, fae.Path)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := reader.ReadFile(t.TempDir(), reader.Options{})

		var fae *reader.FileAccessError
		assert.ErrorAs(t, err, &fae)
	})
}
