package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
)

// A ProgressBar is told when a run starts and when it finishes.
type ProgressBar interface {
	IncrementInProgress(amount uint64)
	MoveInProgressToFinished(amount uint64)
}

// Result is the outcome of one configuration.
type Result struct {
	Index  int
	Name   string
	Config cache.Config
	Stats  cache.Statistics
}

// A Runner simulates a list of configurations with a pool of workers. Every
// worker owns the simulator it runs, and the trace is shared read-only.
type Runner struct {
	parallel      int
	costModel     cache.CostModel
	recorder      datarecording.DataRecorder
	progressBar   ProgressBar
	resultHandler func(Result)
}

// Builder can build Runners.
type Builder struct {
	parallel      int
	costModel     cache.CostModel
	recorder      datarecording.DataRecorder
	progressBar   ProgressBar
	resultHandler func(Result)
}

// MakeBuilder creates a Builder that runs as many workers as there are CPUs.
func MakeBuilder() Builder {
	return Builder{
		parallel:  runtime.NumCPU(),
		costModel: cache.DefaultCostModel(),
	}
}

// WithParallel sets the number of workers. Values below 1 are treated as 1.
func (b Builder) WithParallel(n int) Builder {
	b.parallel = n
	return b
}

// WithCostModel sets the cost model of every simulator.
func (b Builder) WithCostModel(m cache.CostModel) Builder {
	b.costModel = m
	return b
}

// WithDataRecorder makes the runner record a summary of every run.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// WithProgressBar sets the bar that tracks the runs.
func (b Builder) WithProgressBar(pb ProgressBar) Builder {
	b.progressBar = pb
	return b
}

// WithResultHandler sets a function that is called as soon as a run
// finishes. It may be called from several goroutines at the same time.
func (b Builder) WithResultHandler(f func(Result)) Builder {
	b.resultHandler = f
	return b
}

// Build creates the Runner.
func (b Builder) Build() *Runner {
	parallel := b.parallel
	if parallel < 1 {
		parallel = 1
	}

	r := &Runner{
		parallel:      parallel,
		costModel:     b.costModel,
		recorder:      b.recorder,
		progressBar:   b.progressBar,
		resultHandler: b.resultHandler,
	}

	if r.recorder != nil {
		r.recorder.CreateTable(RunTableName, RunEntry{})
	}

	return r
}

// Parallel returns the number of workers.
func (r *Runner) Parallel() int {
	return r.parallel
}

// RunName names the run of the configuration at the given index.
func RunName(index int) string {
	return fmt.Sprintf("run_%04d", index)
}

// Run simulates every configuration over the accesses. The results follow the
// order of configs. If ctx is cancelled, no new run is started and the error
// of ctx is returned after the running ones finish.
func (r *Runner) Run(
	ctx context.Context,
	configs []cache.Config,
	accesses []cache.Access,
) ([]Result, error) {
	results := make([]Result, len(configs))
	errs := make([]error, len(configs))
	jobs := make(chan int)

	var wg sync.WaitGroup

	for range r.parallel {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				results[i], errs[i] = r.runOne(i, configs[i], accesses)
			}
		}()
	}

dispatch:
	for i := range configs {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	r.record(results)

	return results, nil
}

func (r *Runner) runOne(
	index int,
	config cache.Config,
	accesses []cache.Access,
) (Result, error) {
	if r.progressBar != nil {
		r.progressBar.IncrementInProgress(1)
		defer r.progressBar.MoveInProgressToFinished(1)
	}

	name := RunName(index)

	sim, err := cache.MakeBuilder().
		WithConfig(config).
		WithCostModel(r.costModel).
		Build(name)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}

	res := Result{
		Index:  index,
		Name:   name,
		Config: config,
		Stats:  sim.Run(accesses),
	}

	if r.resultHandler != nil {
		r.resultHandler(res)
	}

	return res, nil
}

func (r *Runner) record(results []Result) {
	if r.recorder == nil {
		return
	}

	for _, res := range results {
		r.recorder.InsertData(RunTableName,
			NewRunEntry(res.Name, res.Config, res.Stats))
	}

	r.recorder.Flush()
}
