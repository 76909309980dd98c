package lexicon

import (
	"github.com/qwwqe/tctags/entities/corpus"
	"github.com/qwwqe/tctags/repository"
)

type Lexicon interface {
	Name() string
	Language() string
	AddLexeme(lexeme string, frequency int) error
	AddLexemes(lexemes []string, frequencies []int) error
	// AddPairs counts the words of a tagged corpus and adds each count to
	// the word's current frequency.
	AddPairs(pairs []corpus.Pair) error
	GetLexemeFrequency(lexeme string) (frequency int, isPrefix bool, exists bool)
	// LoadRepository registers a repository with the lexicon and loads the
	// lexemes already stored under the lexicon's name and language.
	LoadRepository(repo repository.Repository) error
	// Lexemes returns every entry in lexicographic order.
	Lexemes() (lexemes []string, frequencies []int)
	NumEntries() int
}
