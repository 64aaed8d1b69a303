package search

import (
	"fmt"
	"os"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsets/cache"
	"github.com/domino14/wordsets/combo"
	"github.com/domino14/wordsets/corpus"
	"github.com/domino14/wordsets/sink"
)

// groupBytesPerFileByte is roughly how much memory a loaded group takes per
// byte of its line in the input file.
const groupBytesPerFileByte = 6

func loadWords(path string, f corpus.Filter) (corpus.Corpus, error) {
	key := fmt.Sprintf("corpus:%s:%d:%t", path, f.Length, f.UniqueLetters)
	c, err := cache.Load(key, func(string) (corpus.Corpus, error) {
		return corpus.LoadFile(path, f)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Msgf("loaded %d words from %s", len(c), path)
	return c, nil
}

func loadGroups(path string, size int) ([]combo.Group, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening groups file: %w", err)
	}
	defer fh.Close()
	if fi, err := fh.Stat(); err == nil {
		need := uint64(fi.Size()) * groupBytesPerFileByte
		free := memory.FreeMemory()
		if free > 0 && need > free {
			log.Warn().Str("file", path).Uint64("need-bytes", need).Uint64("free-bytes", free).
				Uint64("total-bytes", memory.TotalMemory()).Msg("groups file may not fit in memory")
		}
	}
	groups, err := combo.LoadGroups(fh, size)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Info().Msgf("loaded %d groups of %d from %s", len(groups), size, path)
	return groups, nil
}

type output struct {
	*sink.Sink
	f    *os.File
	path string
}

func createOutput(path string, format sink.Format) (*output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return &output{Sink: sink.New(f, format), f: f, path: path}, nil
}

func (o *output) Close() error {
	ferr := o.Flush()
	cerr := o.f.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}
