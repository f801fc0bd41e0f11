package concurrent

import (
	"errors"
	"time"

	"github.com/joejanuszk/CarND-Capstone/pkg/util"
)

var ErrScheduleTimeout = errors.New("worker pool schedule: timed out")

// WorkerPool caps concurrent goroutines for connection handling. workers are
// spawned lazily up to size; queue buffers tasks for busy workers.
type WorkerPool struct {
	sem  chan struct{}
	work chan func()
}

func NewWorkerPool(size, queue int) *WorkerPool {
	return &WorkerPool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn pre-starts idle workers, clamped to the pool size so a
// misconfigured count cannot block here forever.
func (wp *WorkerPool) Spawn(n int) {
	for i := 0; i < util.MinG(n, cap(wp.sem)); i++ {
		wp.sem <- struct{}{}
		go wp.worker(func() {})
	}
}

// Schedule runs task on the pool, blocking until a worker takes it.
func (wp *WorkerPool) Schedule(task func()) error {
	return wp.schedule(task, nil)
}

// ScheduleTimeout gives up with ErrScheduleTimeout when no worker takes the
// task within timeout.
func (wp *WorkerPool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return wp.schedule(task, time.After(timeout))
}

func (wp *WorkerPool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case wp.work <- task:
		return nil
	case wp.sem <- struct{}{}:
		go wp.worker(task)
		return nil
	}
}

func (wp *WorkerPool) worker(task func()) {
	defer func() { <-wp.sem }()

	task()
	for task := range wp.work {
		task()
	}
}
