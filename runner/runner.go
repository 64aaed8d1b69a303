// Package runner is the shared entry point of the search commands: it loads
// the config, sets up logging and signal handling, runs one search and
// reports how it went.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsets/config"
	"github.com/domino14/wordsets/search"
)

// SearchFunc is one of the runs in package search.
type SearchFunc func(ctx context.Context, cfg *config.Config) (*search.Report, error)

// Main runs fn with the process arguments and exits non-zero if it fails.
func Main(fn SearchFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := Run(ctx, os.Args[1:], fn)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
}

// Run loads the config from args, runs fn and writes the report if a report
// file is configured. A relative data path is resolved against the working
// directory before fn sees it.
func Run(ctx context.Context, args []string, fn SearchFunc) error {
	cfg := &config.Config{}
	if err := cfg.Load(args); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := NewLogger(cfg.GetBool(config.ConfigDebug))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	ctx = logger.WithContext(ctx)

	logger.Debug().Msg("Debug logging is on")
	logger.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	if wd, err := os.Getwd(); err == nil {
		cfg.AdjustRelativePaths(wd)
	}
	logger.Info().Msgf("memory: %d MB total, %d MB free",
		memory.TotalMemory()>>20, memory.FreeMemory()>>20)

	rep, err := fn(ctx, cfg)
	if rep != nil {
		logger.Info().Str("search", rep.Search).Int64("found", rep.Found).
			Int64("written", rep.Written).Int("failed-jobs", rep.Failed).
			Dur("duration", rep.Duration).Msg("run finished")
		if path := cfg.GetString(config.ConfigReportFile); path != "" {
			if werr := writeReport(path, rep); werr != nil {
				logger.Error().Err(werr).Str("file", path).Msg("writing report")
			}
		}
	}
	return err
}

// NewLogger builds the console logger the commands use.
func NewLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	return zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

func writeReport(path string, rep *search.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rep.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
