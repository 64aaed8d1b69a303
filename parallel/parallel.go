// Package parallel runs search work across all CPUs. It has two modes:
// Execute fans contiguous chunks of a list out to a limited set of
// goroutines and hands their results back one job at a time, and RunQueue
// feeds single units of work through a bounded channel to a fixed pool.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordsets/stats"
)

var ErrJobPanicked = errors.New("job panicked")

// Workers returns n, or the number of CPUs if n is not positive.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Chunk is a contiguous piece of a larger list. Start is the index of
// Items[0] in that list.
type Chunk[T any] struct {
	Job   int
	Start int
	Items []T
}

// Partition splits items into chunks of size items each; the last chunk may
// be shorter.
func Partition[T any](items []T, size int) []Chunk[T] {
	if size < 1 {
		size = 1
	}
	parts := lo.Chunk(items, size)
	chunks := make([]Chunk[T], len(parts))
	for i, p := range parts {
		chunks[i] = Chunk[T]{Job: i, Start: i * size, Items: p}
	}
	return chunks
}

// JobFunc does the work for one chunk. Anything else it needs (the corpus,
// the full list the chunk came from) is captured by the closure and must
// not be modified.
type JobFunc[T, R any] func(ctx context.Context, c Chunk[T]) ([]R, error)

// Outcome is what a finished job hands back.
type Outcome[R any] struct {
	Job     int
	Start   int
	Results []R
	Err     error
	Elapsed time.Duration
}

type Options struct {
	Workers int
	// ProgressEvery logs a progress line after this many finished jobs.
	// Zero means every 10 jobs.
	ProgressEvery int
	Counters      *stats.Counters
}

type Summary struct {
	Jobs   int
	Failed int
}

// Execute runs job on every chunk with at most opts.Workers jobs in flight.
// collect is called on the calling goroutine, once per successful job, in
// the order jobs finish. A job that errors or panics is logged and skipped;
// the others carry on. If ctx is canceled no more jobs are started, jobs
// already running finish, and ctx.Err() is returned.
func Execute[T, R any](ctx context.Context, chunks []Chunk[T], opts Options,
	job JobFunc[T, R], collect func(Outcome[R])) (Summary, error) {

	logger := zerolog.Ctx(ctx)
	workers := Workers(opts.Workers)
	every := opts.ProgressEvery
	if every <= 0 {
		every = 10
	}
	counters := opts.Counters
	if counters == nil {
		counters = &stats.Counters{}
	}
	timer := stats.NewJobTimer(len(chunks), workers)

	logger.Info().Int("jobs", len(chunks)).Int("workers", workers).Msg("submitting jobs")

	outcomes := make(chan Outcome[R], workers)
	go func() {
		var g errgroup.Group
		g.SetLimit(workers)
	submit:
		for _, c := range chunks {
			c := c
			select {
			case <-ctx.Done():
				logger.Info().Msg("got stop signal, not submitting more jobs")
				break submit
			default:
			}
			g.Go(func() error {
				// g.Go may have waited for a free slot past a cancel.
				if ctx.Err() != nil {
					return nil
				}
				outcomes <- runJob(ctx, c, job)
				return nil
			})
		}
		g.Wait()
		close(outcomes)
	}()

	var sum Summary
	for out := range outcomes {
		sum.Jobs++
		counters.Jobs.Add(1)
		timer.Observe(out.Elapsed)
		if out.Err != nil {
			sum.Failed++
			counters.Failed.Add(1)
			logger.Error().Err(out.Err).Int("job", out.Job).Int("start", out.Start).Msg("job failed")
		} else {
			logger.Debug().Int("job", out.Job).Int("start", out.Start).
				Int("results", len(out.Results)).Dur("elapsed", out.Elapsed).Msg("job finished")
			counters.Found.Add(int64(len(out.Results)))
			collect(out)
		}
		if sum.Jobs%every == 0 || sum.Jobs == len(chunks) {
			snap := counters.Snapshot()
			logger.Info().Msgf("completed %d/%d jobs | found: %d | written: %d | mean job: %v | stdev: %v | eta: %v",
				sum.Jobs, len(chunks), snap.Found, snap.Written,
				timer.Mean().Round(time.Millisecond), timer.Stdev().Round(time.Millisecond),
				timer.Remaining().Round(time.Second))
		}
	}
	return sum, ctx.Err()
}

func runJob[T, R any](ctx context.Context, c Chunk[T], job JobFunc[T, R]) (out Outcome[R]) {
	out.Job = c.Job
	out.Start = c.Start
	tstart := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out.Results = nil
			out.Err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
		out.Elapsed = time.Since(tstart)
	}()
	zerolog.Ctx(ctx).Debug().Int("job", c.Job).Int("start", c.Start).Int("items", len(c.Items)).Msg("job started")
	out.Results, out.Err = job(ctx, c)
	if out.Err != nil {
		out.Results = nil
	}
	return out
}
