package parallel

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordsets/stats"
)

type QueueOptions struct {
	Workers int
	// Capacity bounds the queue. A full queue blocks the producer, which is
	// what keeps generation from running ahead of the workers.
	Capacity int
	// Counters, if set, gets Failed bumped for every dropped unit.
	Counters *stats.Counters
}

// ProduceFunc generates units of work and hands each to emit. emit blocks
// while the queue is full and returns false once ctx is done, at which point
// the producer should stop.
type ProduceFunc[T any] func(ctx context.Context, emit func(T) bool) error

// RunQueue starts opts.Workers goroutines that call consume for each unit
// produce emits. Closing the queue after produce returns is the signal for
// each worker to exit once the queue is drained. A unit whose consume panics
// is logged and dropped. RunQueue returns after every worker has exited.
func RunQueue[T any](ctx context.Context, opts QueueOptions, produce ProduceFunc[T], consume func(T)) error {
	logger := zerolog.Ctx(ctx)
	workers := Workers(opts.Workers)
	capacity := opts.Capacity
	if capacity < 1 {
		capacity = 1
	}
	counters := opts.Counters
	if counters == nil {
		counters = &stats.Counters{}
	}
	queue := make(chan T, capacity)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		i := i
		go func() {
			defer wg.Done()
			for unit := range queue {
				if !consumeSafely(logger, i, unit, consume) {
					counters.Failed.Add(1)
				}
			}
			logger.Debug().Int("worker", i).Msg("worker exiting")
		}()
	}

	var g errgroup.Group
	g.Go(func() error {
		defer close(queue)
		return produce(ctx, func(unit T) bool {
			select {
			case queue <- unit:
				return true
			case <-ctx.Done():
				return false
			}
		})
	})
	err := g.Wait()
	logger.Debug().Msg("finished queueing all work")
	wg.Wait()
	if err != nil {
		return err
	}
	return ctx.Err()
}

func consumeSafely[T any](logger *zerolog.Logger, worker int, unit T, consume func(T)) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			logger.Error().Int("worker", worker).Interface("unit", unit).
				Msgf("%v: %v", ErrJobPanicked, r)
		}
	}()
	consume(unit)
	return true
}
