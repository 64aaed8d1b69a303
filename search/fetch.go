package search

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/domino14/wordsets/config"
	"github.com/domino14/wordsets/corpus"
)

// FetchWords downloads the raw word list and saves the words of the
// configured length with no repeated letters to the words file.
func FetchWords(ctx context.Context, cfg *config.Config) (*Report, error) {
	rep := newReport("fetch", 1)
	url := cfg.GetString(config.ConfigWordsURL)
	rep.Inputs = []string{url}
	words, err := corpus.NewFetcher().Fetch(ctx, url, corpus.Filter{
		Length:        wordLength(cfg),
		UniqueLetters: true,
	})
	if err != nil {
		return rep, fmt.Errorf("downloading word list: %w", err)
	}
	path := cfg.Path(config.ConfigWordsFile)
	rep.Output = path
	f, err := os.Create(path)
	if err != nil {
		return rep, fmt.Errorf("creating words file: %w", err)
	}
	defer f.Close()
	if err := corpus.WriteWords(f, words); err != nil {
		return rep, err
	}
	rep.Words = len(words)
	rep.Found = int64(len(words))
	rep.Written = int64(len(words))
	rep.Duration = time.Since(rep.started)
	zerolog.Ctx(ctx).Info().Msgf("saved %d words to %s", len(words), path)
	return rep, f.Close()
}
