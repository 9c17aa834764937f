package fetch

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
)

// Result is the outcome of one fetch. Exactly one Result exists per
// requested id: either Doc is set, or Err carries the failure text so a
// single bad id never sinks the whole batch.
type Result struct {
	ID  string           `json:"id"`
	Doc payload.Document `json:"doc,omitempty"`
	Err string           `json:"error,omitempty"`
}

func (r Result) Failed() bool {
	return r.Err != ""
}

type FetchFunc func(ctx context.Context, id string) (payload.Document, error)

type Options struct {
	// MaxWorkers caps the pool size; the effective size is also bounded
	// by NumCPU*CPUMultiplier and by the number of ids.
	MaxWorkers    int
	CPUMultiplier int

	// MaxRetries bounds extra attempts after the first; retries happen
	// only when Retryable reports the error as transient.
	MaxRetries  int
	BackoffBase time.Duration
	MaxJitter   time.Duration
	Retryable   func(error) bool

	ProgressEvery int
	Logger        *logging.Logger
}

// RosterOptions sizes the pool for full-roster payloads, which are
// large and few.
func RosterOptions(retryable func(error) bool, logger *logging.Logger) Options {
	return Options{
		MaxWorkers:    10,
		CPUMultiplier: 2,
		MaxRetries:    4,
		BackoffBase:   time.Second,
		MaxJitter:     500 * time.Millisecond,
		Retryable:     retryable,
		ProgressEvery: 50,
		Logger:        logger,
	}
}

// ProfileOptions sizes the pool for player profiles, which are small
// and number in the thousands.
func ProfileOptions(retryable func(error) bool, logger *logging.Logger) Options {
	return Options{
		MaxWorkers:    50,
		CPUMultiplier: 5,
		MaxRetries:    4,
		BackoffBase:   time.Second,
		MaxJitter:     500 * time.Millisecond,
		Retryable:     retryable,
		ProgressEvery: 100,
		Logger:        logger,
	}
}

func (o Options) normalized() Options {
	if o.MaxWorkers < 1 {
		o.MaxWorkers = 10
	}
	if o.CPUMultiplier < 1 {
		o.CPUMultiplier = 2
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = time.Second
	}
	if o.MaxJitter < 0 {
		o.MaxJitter = 0
	}
	if o.ProgressEvery < 1 {
		o.ProgressEvery = 50
	}
	if o.Logger == nil {
		o.Logger = logging.Default()
	}
	return o
}

func (o Options) workersFor(n int) int {
	workers := o.MaxWorkers
	if byCPU := runtime.NumCPU() * o.CPUMultiplier; byCPU < workers {
		workers = byCPU
	}
	if n < workers {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Run fetches every id through fn with bounded concurrency and returns
// one Result per id in completion order.
func Run(ctx context.Context, ids []string, fn FetchFunc, opts Options) ([]Result, error) {
	opts = opts.normalized()
	if len(ids) == 0 {
		return nil, nil
	}

	workers := opts.workersFor(len(ids))
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	opts.Logger.InfoContext(ctx, "fetch batch started", "ids", len(ids), "workers", workers)

	results := make(chan Result, len(ids))
	var completed atomic.Int64
	var wg sync.WaitGroup

	for _, id := range ids {
		id := id
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results <- fetchWithRetry(ctx, id, fn, opts)
			done := completed.Add(1)
			if done%int64(opts.ProgressEvery) == 0 {
				opts.Logger.InfoContext(ctx, "fetch batch progress", "completed", done, "total", len(ids))
			}
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			// Pool refused the task; run it on the caller goroutine so
			// the result set stays complete.
			task()
		}
	}

	wg.Wait()
	close(results)

	out := make([]Result, 0, len(ids))
	failures := 0
	for res := range results {
		if res.Failed() {
			failures++
		}
		out = append(out, res)
	}

	opts.Logger.InfoContext(ctx, "fetch batch finished", "total", len(out), "failures", failures)
	return out, nil
}

func fetchWithRetry(ctx context.Context, id string, fn FetchFunc, opts Options) Result {
	var lastErr error
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{ID: id, Err: err.Error()}
		}

		doc, err := fn(ctx, id)
		if err == nil {
			return Result{ID: id, Doc: doc}
		}
		lastErr = err

		if opts.Retryable == nil || !opts.Retryable(err) || attempt == opts.MaxRetries {
			break
		}

		backoff := opts.BackoffBase * time.Duration(1<<attempt)
		if opts.MaxJitter > 0 {
			backoff += time.Duration(rand.Int63n(int64(opts.MaxJitter)))
		}
		opts.Logger.WarnContext(ctx, "fetch rate limited, backing off",
			"id", id, "attempt", attempt+1, "backoff", backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{ID: id, Err: ctx.Err().Error()}
		case <-timer.C:
		}
	}
	return Result{ID: id, Err: lastErr.Error()}
}
