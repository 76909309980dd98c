package corpus

// Pair is a single word/tag record read from a tagged corpus.
type Pair struct {
	Word string
	Tag  string
	Line int
}

// Corpus is the parsed content of one corpus file.
type Corpus struct {
	Name  string
	Pairs []Pair
}

// Tags returns the tag of every pair, duplicates included.
func (c *Corpus) Tags() []string {
	tags := make([]string, 0, len(c.Pairs))
	for _, p := range c.Pairs {
		tags = append(tags, p.Tag)
	}
	return tags
}
