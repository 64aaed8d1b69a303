// Package testhelpers has word lists shared by the tests of several
// packages.
package testhelpers

import "lukechampine.com/frand"

// PangramWords holds two groups of five words that each cover 25 letters
// ("fjord gucks nymph vibex waltz" misses q, "glent jumby prick vozhd waqfs"
// misses x), plus two words that fit in neither.
var PangramWords = []string{
	"fjord", "gucks", "nymph", "vibex", "waltz",
	"glent", "jumby", "prick", "vozhd", "waqfs",
	"fjeld", "hello",
}

// RandomWords returns n distinct words of length wordLen, each with no
// repeated letter, drawn from the first letters letters of the alphabet.
// A small letter pool makes disjoint groups common.
func RandomWords(n, wordLen, letters int) []string {
	seen := make(map[string]bool, n)
	words := make([]string, 0, n)
	for len(words) < n {
		perm := frand.Perm(letters)
		b := make([]byte, wordLen)
		for i := range b {
			b[i] = byte('a' + perm[i])
		}
		w := string(b)
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}
