// Package lettermask encodes words as bit sets over the lowercase English
// alphabet, so that letter overlap between words can be checked with a
// single AND.
package lettermask

import (
	"math/bits"
	"strings"
)

// AlphabetSize is the number of letters a Mask can represent.
const AlphabetSize = 26

// Mask has bit i set iff the letter 'a'+i occurs in the encoded word.
type Mask uint32

// Full is the mask with every letter of the alphabet set.
const Full Mask = 1<<AlphabetSize - 1

// Encode returns the letter mask for word. ok is false if the word contains
// anything other than the letters a-z.
func Encode(word string) (m Mask, ok bool) {
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return 0, false
		}
		m |= 1 << (c - 'a')
	}
	return m, true
}

// MustEncode is like Encode but panics on a word outside the alphabet.
// Only use it on words that already went through a loader.
func MustEncode(word string) Mask {
	m, ok := Encode(word)
	if !ok {
		panic("lettermask: word outside alphabet: " + word)
	}
	return m
}

func Disjoint(a, b Mask) bool {
	return a&b == 0
}

func Union(a, b Mask) Mask {
	return a | b
}

// Count is the number of distinct letters in m.
func Count(m Mask) int {
	return bits.OnesCount32(uint32(m))
}

// Has reports whether letter r is in the mask.
func (m Mask) Has(r rune) bool {
	if r < 'a' || r > 'z' {
		return false
	}
	return m&(1<<(r-'a')) != 0
}

// Missing returns the letters of the alphabet that are not in m, in
// alphabetical order.
func Missing(m Mask) string {
	var sb strings.Builder
	for i := 0; i < AlphabetSize; i++ {
		if m&(1<<i) == 0 {
			sb.WriteByte(byte('a' + i))
		}
	}
	return sb.String()
}

// String returns the letters in m in alphabetical order.
func (m Mask) String() string {
	return Missing(^m & Full)
}
