// Package combo holds word groups and the two operations that build them
// stage by stage: pairwise generation and group extension.
package combo

import (
	"io"
	"slices"
	"strings"

	"github.com/domino14/wordsets/corpus"
	"github.com/domino14/wordsets/lettermask"
)

// Group is a set of words and the union of their letter masks.
type Group struct {
	Words []string
	Mask  lettermask.Mask
}

// NewGroup builds a group from words over the a-z alphabet.
func NewGroup(words ...string) Group {
	g := Group{Words: slices.Clone(words)}
	for _, w := range words {
		g.Mask |= lettermask.MustEncode(w)
	}
	return g
}

// FromWord makes a single-word group.
func FromWord(w corpus.Word) Group {
	return Group{Words: []string{w.Text}, Mask: w.Mask}
}

// FromCorpus turns every corpus word into a one-word group, keeping order.
func FromCorpus(c corpus.Corpus) []Group {
	gs := make([]Group, len(c))
	for i, w := range c {
		gs[i] = FromWord(w)
	}
	return gs
}

func (g Group) Size() int {
	return len(g.Words)
}

// Coverage is the number of distinct letters the group spans.
func (g Group) Coverage() int {
	return lettermask.Count(g.Mask)
}

func (g Group) Contains(word string) bool {
	return slices.Contains(g.Words, word)
}

// SharesWord reports whether g and o have a word in common.
func (g Group) SharesWord(o Group) bool {
	for _, w := range o.Words {
		if g.Contains(w) {
			return true
		}
	}
	return false
}

// Key is the order-independent identity of the group: its words sorted and
// joined by single spaces.
func (g Group) Key() string {
	if len(g.Words) == 1 {
		return g.Words[0]
	}
	sorted := slices.Clone(g.Words)
	slices.Sort(sorted)
	return strings.Join(sorted, " ")
}

func (g Group) String() string {
	return strings.Join(g.Words, " ")
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ','
}

// ParseGroup parses a line of space and/or comma separated words. ok is false
// if the line doesn't hold exactly size words over the alphabet.
func ParseGroup(line string, size int) (Group, bool) {
	words := strings.FieldsFunc(line, isSeparator)
	if len(words) != size {
		return Group{}, false
	}
	g := Group{Words: words}
	for _, w := range words {
		m, ok := lettermask.Encode(w)
		if !ok {
			return Group{}, false
		}
		g.Mask |= m
	}
	return g, true
}

// LoadGroups reads one group per line, skipping lines that don't parse as a
// group of the given size.
func LoadGroups(r io.Reader, size int) ([]Group, error) {
	var groups []Group
	err := corpus.EachLine(r, func(line string) {
		if g, ok := ParseGroup(line, size); ok {
			groups = append(groups, g)
		}
	})
	return groups, err
}
