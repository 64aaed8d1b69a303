// Package corpus loads word lists into the ordered, deduplicated,
// read-only form the searches work on.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordsets/lettermask"
)

// Word is a word together with its letter mask.
type Word struct {
	Text string
	Mask lettermask.Mask
}

// Corpus is an ordered list of distinct words. Nothing modifies a Corpus
// after it is loaded, so it can be shared freely between workers.
type Corpus []Word

// Filter decides which lines of a word list make it into a Corpus.
type Filter struct {
	// Length is the exact word length required. Zero accepts any length.
	Length int
	// UniqueLetters rejects words with a repeated letter.
	UniqueLetters bool
}

// Accept returns the word's mask and whether the word passes the filter.
func (f Filter) Accept(word string) (lettermask.Mask, bool) {
	if word == "" || (f.Length > 0 && len(word) != f.Length) {
		return 0, false
	}
	m, ok := lettermask.Encode(word)
	if !ok {
		return 0, false
	}
	if f.UniqueLetters && lettermask.Count(m) != len(word) {
		return 0, false
	}
	return m, true
}

// Load reads one word per line. Lines that do not pass the filter are
// skipped. Repeated words keep only their first occurrence.
func Load(r io.Reader, f Filter) (Corpus, error) {
	var words []string
	err := EachLine(r, func(line string) {
		w := strings.TrimSpace(line)
		if _, ok := f.Accept(w); ok {
			words = append(words, w)
		}
	})
	if err != nil {
		return nil, err
	}
	uniq := lo.Uniq(words)
	if len(uniq) != len(words) {
		log.Debug().Int("duplicates", len(words)-len(uniq)).Msg("dropped repeated words")
	}
	return FromWords(uniq), nil
}

// EachLine calls fn with every line of r, without its line ending. Lines
// may be of any length.
func EachLine(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// LoadFile loads a corpus from the file at path.
func LoadFile(path string, f Filter) (Corpus, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer fh.Close()
	c, err := Load(fh, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c, nil
}

// FromWords builds a corpus from words that are already known to be valid
// and distinct.
func FromWords(words []string) Corpus {
	return lo.Map(words, func(w string, _ int) Word {
		return Word{Text: w, Mask: lettermask.MustEncode(w)}
	})
}

// Texts returns the corpus words in order.
func (c Corpus) Texts() []string {
	return lo.Map(c, func(w Word, _ int) string { return w.Text })
}

// WriteWords writes one word per line.
func WriteWords(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
