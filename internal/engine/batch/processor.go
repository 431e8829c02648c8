package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Common batch processing errors.
var (
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
	ErrNilWork            = errors.New("batch work function cannot be nil")
)

// WorkFunc processes the item at index.
type WorkFunc[T, R any] func(ctx context.Context, index int, item T) (R, error)

// ProgressCallback is invoked after each item completes. It may be called
// from several goroutines at once.
type ProgressCallback func(progress *Progress)

// Outcome is the result of one item.
type Outcome[R any] struct {
	Index int
	Value R
	Err   error
}

// Processor runs a WorkFunc over a slice of items.
type Processor[T, R any] struct {
	concurrency int
	onProgress  ProgressCallback
}

// NewProcessor creates a processor running at most concurrency items at once.
func NewProcessor[T, R any](concurrency int) (*Processor[T, R], error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, concurrency)
	}
	return &Processor[T, R]{concurrency: concurrency}, nil
}

// NewProcessorWithDefaults creates a processor with one worker per CPU.
func NewProcessorWithDefaults[T, R any]() *Processor[T, R] {
	return &Processor[T, R]{concurrency: DefaultConcurrency()}
}

// DefaultConcurrency is the worker count used when none is configured.
func DefaultConcurrency() int {
	return runtime.NumCPU()
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T, R]) WithProgressCallback(callback ProgressCallback) *Processor[T, R] {
	p.onProgress = callback
	return p
}

// Concurrency returns the configured worker limit.
func (p *Processor[T, R]) Concurrency() int {
	return p.concurrency
}

// Process runs work over items and returns one Outcome per item, in input
// order. The returned error is ctx.Err() when cancellation kept any item
// from running, and nil otherwise.
func (p *Processor[T, R]) Process(ctx context.Context, items []T, work WorkFunc[T, R]) ([]Outcome[R], error) {
	if work == nil {
		return nil, ErrNilWork
	}

	outcomes := make([]Outcome[R], len(items))
	progress := NewProgress(len(items))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)

	var skipped atomic.Bool
	scheduled := 0
	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		scheduled++

		g.Go(func() error {
			var out Outcome[R]
			out.Index = i
			if err := ctx.Err(); err != nil {
				out.Err = err
				skipped.Store(true)
			} else {
				out.Value, out.Err = work(ctx, i, item)
			}
			outcomes[i] = out

			progress.AddProcessed(out.Err != nil)
			if p.onProgress != nil {
				p.onProgress(progress)
			}
			// Item failures live on the Outcome; the group never fails.
			return nil
		})
	}
	_ = g.Wait()

	if scheduled == len(items) && !skipped.Load() {
		return outcomes, nil
	}
	err := ctx.Err()
	for i := scheduled; i < len(items); i++ {
		outcomes[i] = Outcome[R]{Index: i, Err: err}
	}
	return outcomes, err
}
