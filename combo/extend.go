package combo

import (
	"slices"

	"github.com/domino14/wordsets/corpus"
	"github.com/domino14/wordsets/lettermask"
)

// PairsFrom returns every disjoint pair (i, j) with start <= i < end and
// i < j < len(c), in index order. Running it over adjacent ranges and
// concatenating gives the same result as one call over the whole corpus.
func PairsFrom(c corpus.Corpus, start, end int) []Group {
	var pairs []Group
	for i := start; i < end && i < len(c); i++ {
		a := c[i]
		for _, b := range c[i+1:] {
			if lettermask.Disjoint(a.Mask, b.Mask) {
				pairs = append(pairs, Group{
					Words: []string{a.Text, b.Text},
					Mask:  a.Mask | b.Mask,
				})
			}
		}
	}
	return pairs
}

// Pairs returns all disjoint pairs of the corpus.
func Pairs(c corpus.Corpus) []Group {
	return PairsFrom(c, 0, len(c))
}

type Mode int

const (
	// Strict accepts a group only if no letter is used twice.
	Strict Mode = iota
	// AtLeast accepts a group that covers at least Threshold letters, even if
	// some letters repeat.
	AtLeast
)

// Rule says which extended groups are kept.
type Rule struct {
	Mode       Mode
	WordLength int
	Threshold  int
}

func StrictRule(wordLength int) Rule {
	return Rule{Mode: Strict, WordLength: wordLength}
}

func AtLeastRule(threshold int) Rule {
	return Rule{Mode: AtLeast, Threshold: threshold}
}

// Accept reports whether a group of size words with the given combined mask
// satisfies the rule.
func (r Rule) Accept(size int, m lettermask.Mask) bool {
	switch r.Mode {
	case Strict:
		return lettermask.Count(m) == size*r.WordLength
	case AtLeast:
		return lettermask.Count(m) >= r.Threshold
	}
	return false
}

type ExtendOptions struct {
	Rule Rule
	// AfterSelf only pairs the group at global index n with candidates at
	// indices greater than n. Use it when the candidates are the same list
	// the groups come from.
	AfterSelf bool
	// SortMembers sorts the words of each emitted group.
	SortMembers bool
}

// Extend joins each group in groups with each candidate that shares no word
// with it and passes opts.Rule. groups is a contiguous slice of a larger
// list starting at index start; start only matters with AfterSelf.
//
// Emitted groups list the group's words followed by the candidate's, unless
// SortMembers is set. A group can produce any number of extensions.
func Extend(groups []Group, start int, candidates []Group, opts ExtendOptions) []Group {
	var out []Group
	strict := opts.Rule.Mode == Strict
	for i, g := range groups {
		from := 0
		if opts.AfterSelf {
			from = start + i + 1
		}
		for j := from; j < len(candidates); j++ {
			c := candidates[j]
			if strict && !lettermask.Disjoint(g.Mask, c.Mask) {
				continue
			}
			if g.SharesWord(c) {
				continue
			}
			m := g.Mask | c.Mask
			size := len(g.Words) + len(c.Words)
			if !opts.Rule.Accept(size, m) {
				continue
			}
			words := make([]string, 0, size)
			words = append(words, g.Words...)
			words = append(words, c.Words...)
			if opts.SortMembers {
				slices.Sort(words)
			}
			out = append(out, Group{Words: words, Mask: m})
		}
	}
	return out
}
