package search

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/wordsets/backtrack"
	"github.com/domino14/wordsets/combo"
	"github.com/domino14/wordsets/config"
	"github.com/domino14/wordsets/corpus"
	"github.com/domino14/wordsets/lettermask"
	"github.com/domino14/wordsets/parallel"
	"github.com/domino14/wordsets/sink"
	"github.com/domino14/wordsets/stats"
)

// FindSets runs one backtracking search per word of the list, in parallel,
// and writes every distinct group found.
func FindSets(ctx context.Context, cfg *config.Config) (*Report, error) {
	rep := newReport("sets", parallel.Workers(cfg.GetInt(config.ConfigWorkers)))
	wordsPath := cfg.Path(config.ConfigWordsFile)
	rep.Inputs = []string{wordsPath}
	c, err := loadWords(wordsPath, corpus.Filter{Length: wordLength(cfg)})
	if err != nil {
		return rep, err
	}
	rep.Words = len(c)

	s := &backtrack.Searcher{
		Corpus:     c,
		Size:       cfg.GetInt(config.ConfigGroupSize),
		WordLength: wordLength(cfg),
		FromRoot:   cfg.GetBool(config.ConfigDFSFromRoot),
		LogEvery:   10000,
	}
	err = runStage(ctx, cfg, stage[corpus.Word]{
		name:   "sets",
		chunks: parallel.Partition(c, 1),
		job: func(ctx context.Context, ch parallel.Chunk[corpus.Word]) ([]combo.Group, error) {
			res, err := s.Search(ctx, ch.Start)
			if len(res.Groups) > 0 {
				zerolog.Ctx(ctx).Info().Msgf("found %d sets from %q", len(res.Groups), res.Root)
			}
			return res.Groups, err
		},
		output: cfg.Path(config.ConfigSetsFile),
		format: sink.CommaFormat,
	}, rep)
	return rep, err
}

// FindCombinations checks every combination of group-size words from the
// list and writes those in which no letter repeats, prefixed with the
// letters they leave out. Combinations go through a bounded queue to a
// fixed pool of workers.
func FindCombinations(ctx context.Context, cfg *config.Config) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	workers := parallel.Workers(cfg.GetInt(config.ConfigWorkers))
	rep := newReport("combinations", workers)
	wordsPath := cfg.Path(config.ConfigWordsFile)
	rep.Inputs = []string{wordsPath}
	l := wordLength(cfg)
	c, err := loadWords(wordsPath, corpus.Filter{Length: l})
	if err != nil {
		return rep, err
	}
	rep.Words = len(c)
	k := cfg.GetInt(config.ConfigGroupSize)

	outPath := cfg.Path(config.ConfigCombinationsFile)
	out, err := createOutput(outPath, sink.MissingLetterFormat)
	if err != nil {
		return rep, err
	}
	rep.Output = outPath

	if k < 1 || len(c) < k {
		logger.Info().Int("words", len(c)).Int("group-size", k).Msg("not enough words for a single combination")
		rep.finish(parallel.Summary{}, &stats.Counters{})
		return rep, out.Close()
	}
	logger.Info().Msgf("checking %.0f combinations of %d words with %d workers",
		combin.GeneralizedBinomial(float64(len(c)), float64(k)), k, workers)

	counters := &stats.Counters{}
	every := int64(cfg.GetInt(config.ConfigProgressEvery))
	if every <= 0 {
		every = 100000
	}
	target := k * l

	produce := func(ctx context.Context, emit func([]int) bool) error {
		gen := combin.NewCombinationGenerator(len(c), k)
		for gen.Next() {
			if !emit(gen.Combination(nil)) {
				logger.Info().Msg("got stop signal, no more combinations queued")
				return nil
			}
		}
		return nil
	}
	consume := func(idx []int) {
		checked := counters.Checked.Add(1)
		if checked%every == 0 {
			logger.Info().Msgf("checked: %d | found: %d", checked, counters.Found.Load())
		}
		var m lettermask.Mask
		for _, i := range idx {
			if !lettermask.Disjoint(m, c[i].Mask) {
				return
			}
			m |= c[i].Mask
		}
		if lettermask.Count(m) != target {
			return
		}
		words := make([]string, len(idx))
		for j, i := range idx {
			words[j] = c[i].Text
		}
		counters.Found.Add(1)
		if out.Add(combo.Group{Words: words, Mask: m}) {
			counters.Written.Add(1)
			if err := out.Flush(); err != nil {
				logger.Error().Err(err).Str("file", outPath).Msg("writing results")
			}
		}
	}

	err = parallel.RunQueue(ctx, parallel.QueueOptions{
		Workers:  workers,
		Capacity: cfg.GetInt(config.ConfigQueueSize),
		Counters: counters,
	}, produce, consume)
	rep.finish(parallel.Summary{}, counters)
	cerr := out.Close()
	logger.Info().Msgf("done: checked %d combinations, found %d, output %s", rep.Checked, rep.Found, outPath)
	return rep, errors.Join(err, cerr)
}
