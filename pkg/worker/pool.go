package worker

import (
	"errors"
	"sync"
	"time"

	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

var ErrStopped = errors.New("worker: pool stopped")

type Job func() error

// Pool runs jobs on a fixed number of workers. Submissions beyond
// capacity queue instead of spawning new goroutines.
type Pool struct {
	maxWorkers int
	jobs       chan Job
	wg         sync.WaitGroup
	stopped    bool
	mu         sync.Mutex
}

func NewPool(maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	p := &Pool{
		maxWorkers: maxWorkers,
		jobs:       make(chan Job, maxWorkers*2),
	}
	p.start()
	return p
}

func (p *Pool) start() {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		if err := job(); err != nil {
			logger.Warn("Worker job failed", "worker", id, "error", err)
		}
	}
}

func (p *Pool) Submit(job Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return false
	}

	p.jobs <- job
	return true
}

// Do submits job and blocks until it has run, returning its error.
func (p *Pool) Do(job Job) error {
	done := make(chan error, 1)
	ok := p.Submit(func() error {
		done <- job()
		return nil
	})
	if !ok {
		return ErrStopped
	}
	return <-done
}

// Stop closes the queue and waits for all queued jobs to finish.
func (p *Pool) Stop() {
	p.close()
	p.wg.Wait()
}

// StopTimeout closes the queue and waits up to d for the drain.
// Returns false when jobs were still in flight at the deadline.
func (p *Pool) StopTimeout(d time.Duration) bool {
	p.close()

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return true
	case <-time.After(d):
		return false
	}
}

func (p *Pool) close() {
	p.mu.Lock()
	if !p.stopped {
		close(p.jobs)
		p.stopped = true
	}
	p.mu.Unlock()
}
