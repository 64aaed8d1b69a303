package sink

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordsets/combo"
)

func TestSinkDedups(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	s := New(&buf, SpaceFormat)

	is.True(s.Add(combo.NewGroup("abcde", "fghij", "klmno", "pqrst")))
	// same group found through another path, in another order
	is.True(!s.Add(combo.NewGroup("klmno", "pqrst", "abcde", "fghij")))
	is.True(s.Add(combo.NewGroup("abcde", "fghij", "klmno", "uvwxy")))
	is.NoErr(s.Flush())

	is.Equal(buf.String(), "abcde fghij klmno pqrst\nabcde fghij klmno uvwxy\n")
	is.Equal(s.Len(), 2)
	is.Equal(s.Groups()[1].Words[3], "uvwxy")
}

func TestSinkAddAll(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	s := New(&buf, SortedSpaceFormat)
	n := s.AddAll([]combo.Group{
		combo.NewGroup("fghij", "abcde"),
		combo.NewGroup("abcde", "fghij"),
		combo.NewGroup("klmno", "abcde"),
	})
	is.Equal(n, 2)
	is.NoErr(s.Flush())
	is.Equal(buf.String(), "abcde fghij\nabcde klmno\n")
}

func TestFormats(t *testing.T) {
	is := is.New(t)
	g := combo.NewGroup("fjord", "gucks", "nymph", "vibex", "waltz")
	is.Equal(CommaFormat(g), "fjord, gucks, nymph, vibex, waltz")
	is.Equal(MissingLetterFormat(g), "q: fjord, gucks, nymph, vibex, waltz")
	is.Equal(SortedSpaceFormat(combo.NewGroup("waltz", "fjord")), "fjord waltz")
}

func TestSinkConcurrent(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	s := New(&buf, SpaceFormat)
	words := []string{"abcde", "fghij", "klmno", "pqrst", "uvwxy"}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range words {
				for j := i + 1; j < len(words); j++ {
					if w%2 == 0 {
						s.Add(combo.NewGroup(words[i], words[j]))
					} else {
						s.Add(combo.NewGroup(words[j], words[i]))
					}
				}
			}
		}()
	}
	wg.Wait()
	is.NoErr(s.Flush())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), 10)
	seen := map[string]bool{}
	for _, l := range lines {
		g, ok := combo.ParseGroup(l, 2)
		is.True(ok)
		is.True(!seen[g.Key()])
		seen[g.Key()] = true
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSinkReportsWriteError(t *testing.T) {
	is := is.New(t)
	s := New(failingWriter{}, SpaceFormat)
	s.Add(combo.NewGroup("abcde"))
	is.True(s.Flush() != nil)
	// results are still tracked
	is.Equal(s.Len(), 1)
}
