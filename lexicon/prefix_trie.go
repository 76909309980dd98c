package lexicon

import (
	"sort"
)

type PrefixTrie interface {
	AddLexeme(string, int)
	AddLexemes([]string, []int)
	GetFrequency(string) (int, bool, bool)
	// Walk visits every entry in lexicographic order.
	Walk(func(lexeme string, frequency int))
	NumEntries() int
}

type prefixTrie struct {
	root    *pftNode
	entries int
}

type pftNode struct {
	frequency int
	children  map[rune]*pftNode
}

func NewPrefixTrie() PrefixTrie {
	return &prefixTrie{
		root: newPftNode(),
	}
}

func newPftNode() *pftNode {
	return &pftNode{
		frequency: -1,
		children:  map[rune]*pftNode{},
	}
}

func (t *prefixTrie) AddLexeme(lexeme string, frequency int) {
	t.addLexeme(lexeme, frequency)
}

func (t *prefixTrie) AddLexemes(lexemes []string, frequencies []int) {
	for i, lexeme := range lexemes {
		if i >= len(frequencies) {
			break
		}
		t.addLexeme(lexeme, frequencies[i])
	}
}

func (t *prefixTrie) GetFrequency(lexeme string) (frequency int, isPrefix bool, exists bool) {
	curNode := t.root

	for _, r := range lexeme {
		nextNode, ok := curNode.children[r]
		if !ok {
			return -1, false, false
		}

		curNode = nextNode
	}

	return curNode.frequency, len(curNode.children) > 0, curNode.frequency >= 0
}

func (t *prefixTrie) Walk(fn func(lexeme string, frequency int)) {
	walk(t.root, []rune{}, fn)
}

func walk(n *pftNode, prefix []rune, fn func(string, int)) {
	if n.frequency >= 0 {
		fn(string(prefix), n.frequency)
	}

	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, r := range keys {
		walk(n.children[r], append(prefix, r), fn)
	}
}

func (t *prefixTrie) NumEntries() int {
	return t.entries
}

// addLexeme sets the frequency of lexeme. Negative frequencies and the
// empty lexeme are ignored.
func (t *prefixTrie) addLexeme(lexeme string, frequency int) {
	if lexeme == "" || frequency < 0 {
		return
	}

	curNode := t.root

	for _, r := range lexeme {
		nextNode, ok := curNode.children[r]
		if !ok {
			nextNode = newPftNode()
			curNode.children[r] = nextNode
		}

		curNode = nextNode
	}

	if curNode.frequency < 0 {
		t.entries++
	}
	curNode.frequency = frequency
}
