package combo

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/wordsets/corpus"
	"github.com/domino14/wordsets/lettermask"
	"github.com/domino14/wordsets/testhelpers"
)

func keys(gs []Group) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Key()
	}
	return out
}

func TestPairsDisjointCorpus(t *testing.T) {
	is := is.New(t)
	c := corpus.FromWords([]string{"abcde", "fghij", "klmno"})
	pairs := Pairs(c)
	is.Equal(len(pairs), 3)
	is.Equal(pairs[0].String(), "abcde fghij")
	is.Equal(pairs[1].String(), "abcde klmno")
	is.Equal(pairs[2].String(), "fghij klmno")
}

func TestPairsSkipsOverlap(t *testing.T) {
	is := is.New(t)
	c := corpus.FromWords([]string{"abcde", "efghi", "jklmn"})
	pairs := Pairs(c)
	is.Equal(keys(pairs), []string{"abcde jklmn", "efghi jklmn"})
}

func TestPairsFromRangesConcatenate(t *testing.T) {
	is := is.New(t)
	c := corpus.FromWords(testhelpers.RandomWords(60, 5, 18))
	all := Pairs(c)
	var pieces []Group
	for start := 0; start < len(c); start += 7 {
		pieces = append(pieces, PairsFrom(c, start, start+7)...)
	}
	is.Equal(keys(all), keys(pieces))
}

func TestRuleAccept(t *testing.T) {
	is := is.New(t)
	m := lettermask.MustEncode("abcdefghijklmnopqrst")
	is.True(StrictRule(5).Accept(4, m))
	is.True(!StrictRule(5).Accept(5, m))
	is.True(AtLeastRule(20).Accept(5, m))
	is.True(!AtLeastRule(21).Accept(4, m))
	is.True(!Rule{Mode: Mode(7)}.Accept(4, m))
}

func TestExtendPairsToQuad(t *testing.T) {
	is := is.New(t)
	c := corpus.FromWords([]string{"abcde", "fghij", "klmno", "pqrst"})
	pairs := Pairs(c)
	is.Equal(len(pairs), 6)

	quads := Extend(pairs, 0, pairs, ExtendOptions{
		Rule:        StrictRule(5),
		AfterSelf:   true,
		SortMembers: true,
	})
	// three ways to split four words into two pairs
	is.Equal(len(quads), 3)
	for _, q := range quads {
		is.Equal(q.Key(), "abcde fghij klmno pqrst")
		is.Equal(q.String(), "abcde fghij klmno pqrst")
		is.Equal(q.Coverage(), 20)
	}
}

func TestExtendPairWithWord(t *testing.T) {
	is := is.New(t)
	c := corpus.FromWords([]string{"abcde", "fghij", "klmno", "pqrst", "aqzzy"})
	pairs := []Group{NewGroup("abcde", "fghij")}
	triples := Extend(pairs, 0, FromCorpus(c), ExtendOptions{Rule: StrictRule(5)})
	is.Equal(keys(triples), []string{"abcde fghij klmno", "abcde fghij pqrst"})
	is.Equal(triples[0].Words, []string{"abcde", "fghij", "klmno"})
}

func TestExtendQuadThreshold(t *testing.T) {
	is := is.New(t)
	c := corpus.FromWords([]string{"abcde", "uvwxy", "uvwxa", "uuvvw"})
	quad := NewGroup("abcde", "fghij", "klmno", "pqrst")

	got := Extend([]Group{quad}, 0, FromCorpus(c), ExtendOptions{Rule: AtLeastRule(24)})
	// abcde is already a member; uvwxy reaches 25, uvwxa 24, uuvvw only 23.
	is.Equal(len(got), 2)
	is.Equal(got[0].Words, []string{"abcde", "fghij", "klmno", "pqrst", "uvwxy"})
	is.Equal(got[0].Coverage(), 25)
	is.Equal(got[1].Coverage(), 24)

	strict := Extend([]Group{quad}, 0, FromCorpus(c), ExtendOptions{Rule: StrictRule(5)})
	is.Equal(keys(strict), []string{"abcde fghij klmno pqrst uvwxy"})
}

func TestExtendNeverRepeatsAWord(t *testing.T) {
	is := is.New(t)
	// with a low threshold the only thing stopping a self-extension is the
	// repeated word check
	g := NewGroup("abcde")
	got := Extend([]Group{g}, 0, []Group{g, NewGroup("abcdf")}, ExtendOptions{Rule: AtLeastRule(1)})
	is.Equal(keys(got), []string{"abcde abcdf"})
}

func TestExtendAfterSelfUsesGlobalIndex(t *testing.T) {
	is := is.New(t)
	all := []Group{NewGroup("abcde"), NewGroup("fghij"), NewGroup("klmno")}
	whole := Extend(all, 0, all, ExtendOptions{Rule: StrictRule(5), AfterSelf: true})
	var chunked []Group
	for i := range all {
		chunked = append(chunked, Extend(all[i:i+1], i, all, ExtendOptions{Rule: StrictRule(5), AfterSelf: true})...)
	}
	is.Equal(keys(whole), keys(chunked))
	is.Equal(len(whole), 3)
}

func TestExtendStrictProperties(t *testing.T) {
	c := corpus.FromWords(testhelpers.RandomWords(120, 5, 18))
	pairs := Pairs(c)
	for _, p := range pairs {
		assert.True(t, lettermask.Disjoint(lettermask.MustEncode(p.Words[0]), lettermask.MustEncode(p.Words[1])))
	}
	triples := Extend(pairs, 0, FromCorpus(c), ExtendOptions{Rule: StrictRule(5)})
	for _, g := range triples {
		assert.Equal(t, 15, g.Coverage())
		seen := map[string]bool{}
		for _, w := range g.Words {
			assert.False(t, seen[w], "word %s repeated in %v", w, g.Words)
			seen[w] = true
		}
	}
	// running twice over the same input gives the same groups in the same order
	again := Extend(pairs, 0, FromCorpus(c), ExtendOptions{Rule: StrictRule(5)})
	assert.Equal(t, keys(triples), keys(again))
}
