// Package backtrack finds groups of letter-disjoint words directly, with a
// depth-first search rooted at each corpus word.
package backtrack

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/domino14/wordsets/combo"
	"github.com/domino14/wordsets/corpus"
	"github.com/domino14/wordsets/lettermask"
)

// Searcher looks for groups of Size words that together use Size*WordLength
// distinct letters.
type Searcher struct {
	Corpus     corpus.Corpus
	Size       int
	WordLength int
	// FromRoot starts each root's scan just after the root instead of at the
	// start of the corpus. Each unordered group is then found once, under its
	// first word. Without it the same group turns up under every one of its
	// members and only repeats under the same root are dropped here.
	FromRoot bool
	// LogEvery logs the explored path count at debug level this often.
	LogEvery int
}

type Result struct {
	Root   string
	Groups []combo.Group
	// Paths counts every partial group that passed the overlap check.
	Paths int
}

type state struct {
	s    *Searcher
	ctx  context.Context
	root string
	path []string
	seen map[string]struct{}
	res  *Result
}

// Search runs the search rooted at corpus index root. Groups come back in
// the order the search reaches them. ctx is checked before each branch off
// the root; a canceled search returns what it found so far with ctx.Err().
func (s *Searcher) Search(ctx context.Context, root int) (Result, error) {
	r := s.Corpus[root]
	res := Result{Root: r.Text}
	st := &state{
		s:    s,
		ctx:  ctx,
		root: r.Text,
		path: make([]string, 1, s.Size),
		seen: make(map[string]struct{}),
		res:  &res,
	}
	st.path[0] = r.Text
	cursor := 0
	if s.FromRoot {
		cursor = root + 1
	}
	zerolog.Ctx(ctx).Debug().Str("root", r.Text).Int("index", root).Msg("starting search")
	err := st.dfs(r.Mask, cursor)
	zerolog.Ctx(ctx).Debug().Str("root", r.Text).Int("found", len(res.Groups)).
		Int("paths", res.Paths).Msg("finished search")
	return res, err
}

func (st *state) dfs(used lettermask.Mask, cursor int) error {
	s := st.s
	if len(st.path) == s.Size {
		if lettermask.Count(used) == s.Size*s.WordLength {
			st.record(used)
		}
		return nil
	}
	top := len(st.path) == 1
	for i := cursor; i < len(s.Corpus); i++ {
		if top {
			if err := st.ctx.Err(); err != nil {
				return err
			}
		}
		w := s.Corpus[i]
		if !lettermask.Disjoint(used, w.Mask) || slices.Contains(st.path, w.Text) {
			continue
		}
		st.res.Paths++
		if s.LogEvery > 0 && st.res.Paths%s.LogEvery == 0 {
			zerolog.Ctx(st.ctx).Debug().Str("root", st.root).Int("paths", st.res.Paths).Msg("exploring")
		}
		st.path = append(st.path, w.Text)
		err := st.dfs(used|w.Mask, i+1)
		st.path = st.path[:len(st.path)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

func (st *state) record(used lettermask.Mask) {
	g := combo.Group{Words: slices.Clone(st.path), Mask: used}
	key := g.Key()
	if _, ok := st.seen[key]; ok {
		return
	}
	st.seen[key] = struct{}{}
	st.res.Groups = append(st.res.Groups, g)
}
