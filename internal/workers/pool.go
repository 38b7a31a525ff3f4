// Package workers runs index ranges across a fixed set of goroutines.
package workers

import (
	"runtime"
	"sync"
)

// Pool manages a fixed set of worker goroutines. Jobs submitted through
// ParallelFor must not be submitted concurrently from several callers.
type Pool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewPool creates a pool with n workers, or one per CPU when n <= 0. Call
// Start before submitting jobs.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &Pool{
		numWorkers: n,
		jobQueue:   make(chan func(), n*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		go p.worker()
	}
}

func (p *Pool) worker() {
	for {
		select {
		case job := <-p.jobQueue:
			job()
			p.wg.Done()
		case <-p.quit:
			return
		}
	}
}

// Submit queues a job.
func (p *Pool) Submit(job func()) {
	p.wg.Add(1)
	p.jobQueue <- job
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Stop shuts the workers down. Queued jobs that have not started are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
}

func (p *Pool) Workers() int {
	return p.numWorkers
}

// ParallelFor calls fn for every index in [start, end), split into one
// contiguous chunk per worker, and returns when all calls are done.
func (p *Pool) ParallelFor(start, end int, fn func(int)) {
	if start >= end {
		return
	}
	chunk := max(1, (end-start+p.numWorkers-1)/p.numWorkers)
	for i := start; i < end; i += chunk {
		lo, hi := i, min(i+chunk, end)
		p.Submit(func() {
			for j := lo; j < hi; j++ {
				fn(j)
			}
		})
	}
	p.Wait()
}

// Range runs fn over [start, end) on pool, or inline when pool is nil.
func Range(pool *Pool, start, end int, fn func(int)) {
	if pool == nil {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}
	pool.ParallelFor(start, end, fn)
}
