package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordsets/config"
	"github.com/domino14/wordsets/search"
)

func TestRunWritesReport(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.yaml")
	var gotChunk int
	err := Run(context.Background(), []string{"--chunk-size=17", "--report-file", reportPath},
		func(ctx context.Context, cfg *config.Config) (*search.Report, error) {
			gotChunk = cfg.GetInt(config.ConfigChunkSize)
			return &search.Report{Search: "fake", Found: 4, Written: 2}, nil
		})
	is.NoErr(err)
	is.Equal(gotChunk, 17)
	bts, err := os.ReadFile(reportPath)
	is.NoErr(err)
	is.True(strings.Contains(string(bts), "search: fake"))
	is.True(strings.Contains(string(bts), "written: 2"))
}

func TestRunPassesErrorsThrough(t *testing.T) {
	is := is.New(t)
	boom := errors.New("no words file")
	err := Run(context.Background(), nil, func(ctx context.Context, cfg *config.Config) (*search.Report, error) {
		return nil, boom
	})
	is.True(errors.Is(err, boom))
}

func TestRunBadFlag(t *testing.T) {
	is := is.New(t)
	called := false
	err := Run(context.Background(), []string{"--bogus"}, func(ctx context.Context, cfg *config.Config) (*search.Report, error) {
		called = true
		return nil, nil
	})
	is.True(err != nil)
	is.True(!called)
}

func TestRunEndToEnd(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "five_letter_words.txt"), []byte("abcde\nfghij\nklmno\n"), 0o644))
	err := Run(context.Background(), []string{"--data-path", dir, "--workers", "2"}, search.FindPairs)
	is.NoErr(err)
	bts, err := os.ReadFile(filepath.Join(dir, "valid_pairs.txt"))
	is.NoErr(err)
	is.Equal(len(strings.Split(strings.TrimSpace(string(bts)), "\n")), 3)
}

func TestRunResolvesDataPath(t *testing.T) {
	is := is.New(t)
	wd, err := os.Getwd()
	is.NoErr(err)
	var got string
	err = Run(context.Background(), []string{"--data-path", "data"},
		func(ctx context.Context, cfg *config.Config) (*search.Report, error) {
			got = cfg.Path(config.ConfigPairsFile)
			return nil, nil
		})
	is.NoErr(err)
	is.Equal(got, filepath.Join(wd, "data", "valid_pairs.txt"))
}

func TestRunRejectsZeroGroupSize(t *testing.T) {
	is := is.New(t)
	called := false
	err := Run(context.Background(), []string{"--group-size", "0"},
		func(ctx context.Context, cfg *config.Config) (*search.Report, error) {
			called = true
			return nil, nil
		})
	is.True(errors.Is(err, config.ErrInvalidSetting))
	is.True(!called)
}
