// Package sink deduplicates found groups and writes the first occurrence of
// each to the output.
package sink

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/cespare/xxhash"

	"github.com/domino14/wordsets/combo"
	"github.com/domino14/wordsets/lettermask"
)

// Format renders a group as one output line, without the newline.
type Format func(combo.Group) string

// SpaceFormat writes the words in group order: "w1 w2 w3".
func SpaceFormat(g combo.Group) string {
	return strings.Join(g.Words, " ")
}

// SortedSpaceFormat writes the words sorted, which is also the group's key.
func SortedSpaceFormat(g combo.Group) string {
	return g.Key()
}

// CommaFormat writes "w1, w2, w3".
func CommaFormat(g combo.Group) string {
	return strings.Join(g.Words, ", ")
}

// MissingLetterFormat prefixes the comma format with the letters the group
// does not cover: "q: w1, w2, w3".
func MissingLetterFormat(g combo.Group) string {
	return lettermask.Missing(g.Mask) + ": " + CommaFormat(g)
}

// Sink owns the set of results of one run and the stream they are written
// to. It is safe for concurrent use; every call takes the same lock, so
// lines from different goroutines never interleave.
type Sink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	format Format
	// buckets maps the hash of a key to the indices of the results with that
	// hash. Keys are compared in full, so a hash collision can't drop a
	// result.
	buckets map[uint64][]int
	results []combo.Group
	keys    []string
	err     error
}

func New(w io.Writer, format Format) *Sink {
	return &Sink{
		w:       bufio.NewWriter(w),
		format:  format,
		buckets: make(map[uint64][]int),
	}
}

// Add writes g if no group with the same key was added before, and reports
// whether it did.
func (s *Sink) Add(g combo.Group) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(g)
}

// AddAll adds a batch of groups under a single lock and returns how many
// were new.
func (s *Sink) AddAll(groups []combo.Group) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, g := range groups {
		if s.add(g) {
			n++
		}
	}
	return n
}

func (s *Sink) add(g combo.Group) bool {
	key := g.Key()
	h := xxhash.Sum64String(key)
	for _, idx := range s.buckets[h] {
		if s.keys[idx] == key {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], len(s.results))
	s.results = append(s.results, g)
	s.keys = append(s.keys, key)
	if s.err == nil {
		if _, err := s.w.WriteString(s.format(g)); err != nil {
			s.err = err
		} else if err := s.w.WriteByte('\n'); err != nil {
			s.err = err
		}
	}
	return true
}

// Flush pushes buffered lines to the underlying writer. It returns the first
// write error seen since the sink was created.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.err = s.w.Flush()
	return s.err
}

func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Groups returns the results in the order they were first added.
func (s *Sink) Groups() []combo.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]combo.Group, len(s.results))
	copy(out, s.results)
	return out
}
