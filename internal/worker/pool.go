package worker

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/logger"
)

// ErrPoolStopped is returned by Stop when the pool was already stopped.
var ErrPoolStopped = errors.New(ErrMsgPoolStopped)

// Job is one unit of work run by a Pool.
type Job func(ctx context.Context) error

// Pool runs jobs on a fixed set of workers. Jobs submitted with the same
// key run on the same worker in submission order; each job gets its own
// timeout so a stuck job only delays its own worker.
type Pool struct {
	queues  []chan Job
	timeout time.Duration

	mu      sync.RWMutex
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool creates a pool with workers queues of queueSize jobs each. A zero
// timeout leaves jobs without a deadline.
func NewPool(workers, queueSize int, timeout time.Duration) *Pool {
	workers = max(workers, 1)
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queues:  make([]chan Job, workers),
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := range p.queues {
		p.queues[i] = make(chan Job, queueSize)
	}
	return p
}

// Start starts the workers
func (p *Pool) Start() {
	for _, q := range p.queues {
		p.wg.Add(1)
		go p.worker(q)
	}
}

func (p *Pool) worker(q <-chan Job) {
	defer p.wg.Done()
	for job := range q {
		p.run(job)
	}
}

func (p *Pool) run(job Job) {
	ctx := p.ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()
	if err := job(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgWorkerJobFailed, "error", err)
	}
}

func (p *Pool) shard(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(p.queues)))
}

// Submit queues job on the worker owning key without blocking. It returns
// false if that worker's queue is full or the pool is stopped.
func (p *Pool) Submit(key string, job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.queues[p.shard(key)] <- job:
		return true
	default:
		return false
	}
}

// Stop refuses new jobs and waits for queued ones to finish. When ctx ends
// first, running jobs are cancelled and the rest are abandoned.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPoolStopped
	}
	p.stopped = true
	for _, q := range p.queues {
		close(q)
	}
	p.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Info(LogMsgPoolStopping, "workers", len(p.queues))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgPoolStopTimeout)
		p.cancel()
		<-done
		return fmt.Errorf("worker pool stop: %w", ctx.Err())
	}
}
