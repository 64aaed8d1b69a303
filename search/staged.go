// Package search wires loaders, search engines and the result sink into the
// runs the commands perform: the staged pipeline (pairs, triples, quads,
// quintuples) and the two direct searches.
package search

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/domino14/wordsets/combo"
	"github.com/domino14/wordsets/config"
	"github.com/domino14/wordsets/corpus"
	"github.com/domino14/wordsets/parallel"
	"github.com/domino14/wordsets/sink"
	"github.com/domino14/wordsets/stats"
)

// stage describes one staged run: which chunks to hand out and how each is
// turned into groups.
type stage[T any] struct {
	name   string
	chunks []parallel.Chunk[T]
	job    parallel.JobFunc[T, combo.Group]
	output string
	format sink.Format
}

func runStage[T any](ctx context.Context, cfg *config.Config, st stage[T], rep *Report) error {
	logger := zerolog.Ctx(ctx)
	out, err := createOutput(st.output, st.format)
	if err != nil {
		return err
	}
	rep.Output = st.output

	counters := &stats.Counters{}
	var writeErr error
	sum, err := parallel.Execute(ctx, st.chunks, parallel.Options{
		Workers:  cfg.GetInt(config.ConfigWorkers),
		Counters: counters,
	}, st.job, func(o parallel.Outcome[combo.Group]) {
		n := out.AddAll(o.Results)
		counters.Written.Add(int64(n))
		if err := out.Flush(); err != nil && writeErr == nil {
			writeErr = err
			logger.Error().Err(err).Str("file", st.output).Msg("writing results")
		}
	})
	rep.finish(sum, counters)
	cerr := out.Close()
	logger.Info().Msgf("%s done: found %d, unique written %d, failed jobs %d, output %s",
		st.name, rep.Found, rep.Written, rep.Failed, st.output)
	return errors.Join(err, writeErr, cerr)
}

func wordLength(cfg *config.Config) int {
	return cfg.GetInt(config.ConfigWordLength)
}

// FindPairs writes every pair of letter-disjoint words in the word list.
// Each job takes a range of first words and pairs them with every later
// word of the whole list.
func FindPairs(ctx context.Context, cfg *config.Config) (*Report, error) {
	rep := newReport("pairs", parallel.Workers(cfg.GetInt(config.ConfigWorkers)))
	wordsPath := cfg.Path(config.ConfigWordsFile)
	rep.Inputs = []string{wordsPath}
	c, err := loadWords(wordsPath, corpus.Filter{Length: wordLength(cfg)})
	if err != nil {
		return rep, err
	}
	rep.Words = len(c)

	err = runStage(ctx, cfg, stage[corpus.Word]{
		name:   "pairs",
		chunks: parallel.Partition(c, cfg.GetInt(config.ConfigChunkSize)),
		job: func(ctx context.Context, ch parallel.Chunk[corpus.Word]) ([]combo.Group, error) {
			return combo.PairsFrom(c, ch.Start, ch.Start+len(ch.Items)), nil
		},
		output: cfg.Path(config.ConfigPairsFile),
		format: sink.SpaceFormat,
	}, rep)
	return rep, err
}

// FindTriples extends every pair with each word that keeps all letters
// distinct.
func FindTriples(ctx context.Context, cfg *config.Config) (*Report, error) {
	rep := newReport("triples", parallel.Workers(cfg.GetInt(config.ConfigWorkers)))
	wordsPath, pairsPath := cfg.Path(config.ConfigWordsFile), cfg.Path(config.ConfigPairsFile)
	rep.Inputs = []string{wordsPath, pairsPath}
	c, err := loadWords(wordsPath, corpus.Filter{Length: wordLength(cfg), UniqueLetters: true})
	if err != nil {
		return rep, err
	}
	pairs, err := loadGroups(pairsPath, 2)
	if err != nil {
		return rep, err
	}
	rep.Words, rep.Groups = len(c), len(pairs)
	words := combo.FromCorpus(c)
	opts := combo.ExtendOptions{Rule: combo.StrictRule(wordLength(cfg)), SortMembers: true}

	err = runStage(ctx, cfg, stage[combo.Group]{
		name:   "triples",
		chunks: parallel.Partition(pairs, cfg.GetInt(config.ConfigChunkSize)),
		job: func(ctx context.Context, ch parallel.Chunk[combo.Group]) ([]combo.Group, error) {
			return combo.Extend(ch.Items, ch.Start, words, opts), nil
		},
		output: cfg.Path(config.ConfigTriplesFile),
		format: sink.SpaceFormat,
	}, rep)
	return rep, err
}

// FindQuads joins pairs with later pairs into four-word groups with no
// repeated letter.
func FindQuads(ctx context.Context, cfg *config.Config) (*Report, error) {
	rep := newReport("quads", parallel.Workers(cfg.GetInt(config.ConfigWorkers)))
	pairsPath := cfg.Path(config.ConfigPairsFile)
	rep.Inputs = []string{pairsPath}
	pairs, err := loadGroups(pairsPath, 2)
	if err != nil {
		return rep, err
	}
	rep.Groups = len(pairs)
	opts := combo.ExtendOptions{
		Rule:        combo.StrictRule(wordLength(cfg)),
		AfterSelf:   true,
		SortMembers: true,
	}

	err = runStage(ctx, cfg, stage[combo.Group]{
		name:   "quads",
		chunks: parallel.Partition(pairs, cfg.GetInt(config.ConfigChunkSize)),
		job: func(ctx context.Context, ch parallel.Chunk[combo.Group]) ([]combo.Group, error) {
			return combo.Extend(ch.Items, ch.Start, pairs, opts), nil
		},
		output: cfg.Path(config.ConfigQuadsFile),
		format: sink.SpaceFormat,
	}, rep)
	return rep, err
}

// FindQuintuples extends each quad with every word that brings the group's
// coverage to at least the configured threshold. Letters may repeat here.
func FindQuintuples(ctx context.Context, cfg *config.Config) (*Report, error) {
	rep := newReport("quintuples", parallel.Workers(cfg.GetInt(config.ConfigWorkers)))
	wordsPath, quadsPath := cfg.Path(config.ConfigWordsFile), cfg.Path(config.ConfigQuadsFile)
	rep.Inputs = []string{wordsPath, quadsPath}
	c, err := loadWords(wordsPath, corpus.Filter{Length: wordLength(cfg), UniqueLetters: true})
	if err != nil {
		return rep, err
	}
	quads, err := loadGroups(quadsPath, 4)
	if err != nil {
		return rep, err
	}
	rep.Words, rep.Groups = len(c), len(quads)
	words := combo.FromCorpus(c)
	opts := combo.ExtendOptions{Rule: combo.AtLeastRule(cfg.GetInt(config.ConfigThreshold))}

	err = runStage(ctx, cfg, stage[combo.Group]{
		name:   "quintuples",
		chunks: parallel.Partition(quads, cfg.GetInt(config.ConfigChunkSize)),
		job: func(ctx context.Context, ch parallel.Chunk[combo.Group]) ([]combo.Group, error) {
			return combo.Extend(ch.Items, ch.Start, words, opts), nil
		},
		output: cfg.Path(config.ConfigQuintuplesFile),
		format: sink.SpaceFormat,
	}, rep)
	return rep, err
}
