// Package worker runs delayed, cancellable background tasks such as
// powerup expiry reminders and delayed decoy spawns.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/concurrency"
	"github.com/osse101/DuckHunt_Go/internal/logger"
)

// ErrTasksClosed is returned by Schedule after Shutdown.
var ErrTasksClosed = errors.New(ErrMsgTasksClosed)

// Task is the body of a scheduled task. ctx is cancelled when the task is
// superseded, cancelled, or the registry shuts down.
type Task func(ctx context.Context)

type entry struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Tasks is a registry of at most one pending task per key. Scheduling a key
// that already has a task cancels the old one and waits for it to finish
// before the new one is registered.
type Tasks struct {
	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
	wg      sync.WaitGroup
	keys    *concurrency.LockManager
}

// NewTasks creates an empty registry.
func NewTasks() *Tasks {
	return &Tasks{
		entries: make(map[string]*entry),
		keys:    concurrency.NewLockManager(),
	}
}

// Schedule runs fn after delay under key. A task must not schedule its own
// key from inside fn.
func (t *Tasks) Schedule(ctx context.Context, key string, delay time.Duration, fn Task) error {
	log := logger.FromContext(ctx)

	unlock := t.keys.Lock(key)
	defer unlock()

	if prev := t.take(key); prev != nil {
		prev.cancel()
		<-prev.done
		log.Debug(LogMsgTaskSuperseded, "key", key)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTasksClosed
	}
	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e := &entry{cancel: cancel, done: make(chan struct{})}
	t.entries[key] = e
	t.wg.Add(1)
	t.mu.Unlock()

	go t.run(taskCtx, key, e, delay, fn)
	log.Debug(LogMsgTaskScheduled, "key", key, "delay", delay.String())
	return nil
}

func (t *Tasks) run(ctx context.Context, key string, e *entry, delay time.Duration, fn Task) {
	defer t.wg.Done()
	defer close(e.done)
	defer t.forget(key, e)
	defer e.cancel()
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgTaskPanicked, "key", key, "panic", r)
		}
	}()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	fn(ctx)
}

// Cancel stops the task under key and waits for it. Reports whether a task
// was pending.
func (t *Tasks) Cancel(ctx context.Context, key string) bool {
	unlock := t.keys.Lock(key)
	defer unlock()

	e := t.take(key)
	if e == nil {
		return false
	}
	e.cancel()
	<-e.done
	logger.FromContext(ctx).Debug(LogMsgTaskCancelled, "key", key)
	return true
}

// Pending reports whether key has a task that has not finished.
func (t *Tasks) Pending(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[key]
	return ok
}

// Len returns the number of pending tasks.
func (t *Tasks) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Shutdown cancels every pending task and waits for running ones.
func (t *Tasks) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgTasksShuttingDown)

	t.mu.Lock()
	t.closed = true
	for _, e := range t.entries {
		e.cancel()
	}
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgTasksShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgTasksShutdownTimeout)
		return ctx.Err()
	}
}

func (t *Tasks) take(key string) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[key]
	delete(t.entries, key)
	return e
}

func (t *Tasks) forget(key string, e *entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.entries[key] == e {
		delete(t.entries, key)
	}
}
