package cryptox

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// ErrWorkerPanic is returned when the offloaded function panics.
var ErrWorkerPanic = errors.New("cryptox: worker panicked")

// Pool bounds how many CPU-heavy jobs run at once. Callers park on a
// channel while a job runs; they never hold an OS thread spinning.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool of the given size, or GOMAXPROCS when size <= 0.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

func (p *Pool) Size() int { return p.size }

type result[T any] struct {
	val T
	err error
}

// Run executes fn on the pool and waits for it or for ctx to end. If ctx
// ends first the job keeps its slot until it finishes, so the pool never
// runs more than Size jobs even when callers give up.
func Run[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var zero T

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, fmt.Errorf("cryptox: acquire worker: %w", err)
	}

	done := make(chan result[T], 1)
	go func() {
		poolInflight.Inc()
		defer func() {
			poolInflight.Dec()
			p.sem.Release(1)
		}()
		defer func() {
			if r := recover(); r != nil {
				done <- result[T]{err: fmt.Errorf("%w: %v", ErrWorkerPanic, r)}
			}
		}()

		v, err := fn()
		done <- result[T]{val: v, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, fmt.Errorf("cryptox: wait for worker: %w", ctx.Err())
	}
}
