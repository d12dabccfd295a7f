// Package workerpool runs submitted tasks on a fixed set of goroutines.
package workerpool

import (
	"errors"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

var ErrQueueFull = errors.New("worker pool queue is full")

var ErrStopped = errors.New("worker pool stopped")

type Pool struct {
	workers int
	queue   chan func()
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool

	wg sync.WaitGroup
}

// New starts a pool with n workers and a queue of queueSize pending tasks.
func New(n, queueSize int, log zerolog.Logger) *Pool {
	if n <= 0 {
		n = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	p := &Pool{
		workers: n,
		queue:   make(chan func(), queueSize),
		log:     log,
	}

	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.queue {
		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("workerpool.task_panic")
		}
	}()
	task()
}

// Submit enqueues task without blocking. Task errors are logged.
func (p *Pool) Submit(task func() error) error {
	if task == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}

	wrapped := func() {
		if err := task(); err != nil {
			p.log.Warn().Err(err).Msg("workerpool.task_failed")
		}
	}

	select {
	case p.queue <- wrapped:
		return nil
	default:
		return ErrQueueFull
	}
}

// SubmitWait enqueues task and blocks until it has run. On a single-worker
// pool every task submitted earlier has finished by then.
func (p *Pool) SubmitWait(task func() error) error {
	if task == nil {
		return nil
	}

	done := make(chan error, 1)
	wrapped := func() {
		defer func() {
			if r := recover(); r != nil {
				done <- errors.New("task panicked")
				panic(r)
			}
		}()
		done <- task()
	}

	p.mu.RLock()
	if p.stopped {
		p.mu.RUnlock()
		return ErrStopped
	}
	p.queue <- wrapped
	p.mu.RUnlock()

	return <-done
}

// StopWait runs every queued task before returning.
func (p *Pool) StopWait() {
	if !p.markStopped() {
		return
	}
	close(p.queue)
	p.wg.Wait()
}

func (p *Pool) markStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	p.stopped = true
	return true
}
