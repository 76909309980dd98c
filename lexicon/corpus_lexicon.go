package lexicon

import (
	"errors"
	"sort"

	"github.com/qwwqe/tctags/entities/corpus"
	"github.com/qwwqe/tctags/repository"
)

var errMismatchedFrequencies = errors.New("lexicon: lexemes and frequencies differ in length")

type corpusLexicon struct {
	name       string
	language   string
	prefixTrie PrefixTrie
	repository repository.Repository
}

// NewLexicon returns an empty lexicon. Entries are only persisted once a
// repository is registered with LoadRepository.
func NewLexicon(name string, language string) Lexicon {
	return &corpusLexicon{
		name:       name,
		language:   language,
		prefixTrie: NewPrefixTrie(),
	}
}

func (l *corpusLexicon) Name() string {
	return l.name
}

func (l *corpusLexicon) Language() string {
	return l.language
}

func (l *corpusLexicon) AddLexeme(lexeme string, frequency int) error {
	if l.repository != nil {
		err := l.repository.AddLexeme(l.name, l.language, lexeme, frequency)
		if err != nil {
			return err
		}
	}
	l.prefixTrie.AddLexeme(lexeme, frequency)
	return nil
}

func (l *corpusLexicon) AddLexemes(lexemes []string, frequencies []int) error {
	if len(lexemes) != len(frequencies) {
		return errMismatchedFrequencies
	}

	if l.repository != nil {
		err := l.repository.AddLexemes(l.name, l.language, lexemes, frequencies)
		if err != nil {
			return err
		}
	}
	l.prefixTrie.AddLexemes(lexemes, frequencies)
	return nil
}

func (l *corpusLexicon) AddPairs(pairs []corpus.Pair) error {
	counts := map[string]int{}
	for _, p := range pairs {
		counts[p.Word]++
	}

	lexemes := make([]string, 0, len(counts))
	for word := range counts {
		lexemes = append(lexemes, word)
	}
	sort.Strings(lexemes)

	frequencies := make([]int, len(lexemes))
	for i, word := range lexemes {
		frequencies[i] = counts[word]
		if freq, _, exists := l.prefixTrie.GetFrequency(word); exists {
			frequencies[i] += freq
		}
	}

	return l.AddLexemes(lexemes, frequencies)
}

func (l *corpusLexicon) GetLexemeFrequency(lexeme string) (frequency int, isPrefix bool, exists bool) {
	return l.prefixTrie.GetFrequency(lexeme)
}

func (l *corpusLexicon) LoadRepository(repository repository.Repository) error {
	l.repository = repository
	lexemes, frequencies, err := l.repository.GetLexemes(l.name, l.language)
	if len(lexemes) == 0 || err != nil {
		return err
	}

	l.prefixTrie.AddLexemes(lexemes, frequencies)
	return nil
}

func (l *corpusLexicon) Lexemes() (lexemes []string, frequencies []int) {
	lexemes = []string{}
	frequencies = []int{}
	l.prefixTrie.Walk(func(lexeme string, frequency int) {
		lexemes = append(lexemes, lexeme)
		frequencies = append(frequencies, frequency)
	})
	return lexemes, frequencies
}

func (l *corpusLexicon) NumEntries() int {
	return l.prefixTrie.NumEntries()
}
