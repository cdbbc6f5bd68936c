// Package workerpool schedules per-file extraction across a fixed set of
// goroutines, sized to match the parser pool so neither starves the
// other.
package workerpool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ddcheck/ddcheck/internal/extract"
	"github.com/ddcheck/ddcheck/internal/filecache"
	"github.com/ddcheck/ddcheck/internal/poolsize"
)

// Job is one file to analyze.
type Job struct {
	Path  string
	JobID int
}

// Result is the outcome of analyzing one file.
type Result struct {
	Path   string
	Result *extract.FileResult
	JobID  int
}

// Failure pairs a file path with the error encountered analyzing it.
type Failure struct {
	Path  string
	Error error
}

// Pool runs Jobs across a fixed goroutine count, reading file content
// through a shared filecache.Cache and handing it to a shared
// extract.Analyzer.
type Pool struct {
	numWorkers int
	jobs       chan Job
	results    chan Result
	errors     chan Failure
	wg         sync.WaitGroup

	analyzer *extract.Analyzer
	cache    filecache.Cache
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// New builds a Pool. numWorkers of 0 uses poolsize.Optimal(), the same
// formula the parser pool uses.
func New(numWorkers int, analyzer *extract.Analyzer, cache filecache.Cache, logger *slog.Logger) *Pool {
	if numWorkers == 0 {
		numWorkers = poolsize.Optimal()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numWorkers*2),
		results:    make(chan Result, numWorkers),
		errors:     make(chan Failure, numWorkers),
		analyzer:   analyzer,
		cache:      cache,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns the worker goroutines. Must be called before Submit.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		p.logger.Warn("worker pool already started")
		return
	}
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processJob(job)
		}
	}
}

func (p *Pool) processJob(job Job) {
	content, err := p.cache.Get(job.Path)
	if err != nil {
		p.jobsFailed.Add(1)
		p.errors <- Failure{Path: job.Path, Error: fmt.Errorf("read %s: %w", job.Path, err)}
		return
	}

	result, err := p.analyzer.AnalyzeFile(job.Path, content)
	if err != nil {
		p.jobsFailed.Add(1)
		p.errors <- Failure{Path: job.Path, Error: fmt.Errorf("analyze %s: %w", job.Path, err)}
		return
	}

	p.jobsProcessed.Add(1)
	p.results <- Result{Path: job.Path, Result: result, JobID: job.JobID}
}

// Submit enqueues a job, blocking if the pool is full.
func (p *Pool) Submit(job Job) error {
	if p.stopped.Load() {
		return fmt.Errorf("worker pool is stopped")
	}
	p.jobsSubmitted.Add(1)
	select {
	case <-p.ctx.Done():
		return fmt.Errorf("worker pool cancelled")
	case p.jobs <- job:
		return nil
	}
}

// Results returns the results channel.
func (p *Pool) Results() <-chan Result { return p.results }

// Errors returns the errors channel.
func (p *Pool) Errors() <-chan Failure { return p.errors }

// FinishSubmitting closes the jobs channel. Idempotent.
func (p *Pool) FinishSubmitting() {
	if p.jobsClosed.CompareAndSwap(false, true) {
		close(p.jobs)
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Stop closes the jobs channel if needed, waits for workers, and closes
// the output channels. Idempotent.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.FinishSubmitting()
	p.wg.Wait()
	close(p.results)
	close(p.errors)
	p.cancel()
}

// Stats reports cumulative pool counters.
type Stats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
}

// Stats returns current pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		NumWorkers:    p.numWorkers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsProcessed: p.jobsProcessed.Load(),
		JobsFailed:    p.jobsFailed.Load(),
	}
}
