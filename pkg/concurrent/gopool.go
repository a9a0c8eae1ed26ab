package concurrent

import (
	"errors"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

// Pool caps the number of goroutines used to serve websocket clients, so a
// frame broadcast to many subscribers never spawns one goroutine per client
// per frame.
type Pool struct {
	sem  chan struct{}
	work chan func()
}

// NewPool creates a pool of at most size goroutines with a task queue of
// length queue.
func NewPool(size, queue int) *Pool {
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn starts up to n idle workers ahead of demand.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			go p.worker(nil)
		default:
			return
		}
	}
}

// Schedule runs task on a pool worker, blocking until one is free.
func (p *Pool) Schedule(task func()) {
	p.schedule(task, nil)
}

// ScheduleTimeout runs task on a pool worker, giving up with
// ErrScheduleTimeout if none frees up within timeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()
	if task != nil {
		task()
	}
	for task := range p.work {
		task()
	}
}

func (p *Pool) Close() {
	close(p.work)
}
