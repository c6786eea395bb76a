// Package jobs runs typed background work on a bounded worker pool.
package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotStarted is returned by Enqueue before Start or after Stop.
	ErrNotStarted = errors.New("queue not running")
	// ErrFull is returned when the buffer has no room and the caller's context ends.
	ErrFull = errors.New("queue full")
)

// Job wraps one payload with its retry bookkeeping.
type Job[T any] struct {
	Payload  T
	Attempt  int
	Enqueued time.Time
}

// Handler processes a payload.
type Handler[T any] func(context.Context, T) error

// Config sizes a queue.
type Config struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue dispatches payloads to a fixed number of goroutines. Failed payloads
// are retried up to MaxRetries times and then logged and dropped.
type Queue[T any] struct {
	name    string
	handler Handler[T]
	cfg     Config
	logger  *zap.Logger

	jobs    chan Job[T]
	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
	ctx     context.Context
	wg      sync.WaitGroup

	// retryMu orders retries.Add against Stop's retries.Wait.
	retryMu  sync.Mutex
	stopping bool
	retries  sync.WaitGroup
}

// New builds a queue; call Start before enqueuing.
func New[T any](name string, handler Handler[T], cfg Config) *Queue[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 16
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue[T]{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  logger.With(zap.String("queue", name)),
		jobs:    make(chan Job[T], cfg.BufferSize),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	q.running = true
	q.logger.Info("queue started", zap.Int("workers", q.cfg.Workers))
}

// Stop refuses new payloads, drains the buffer and waits for the workers.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	q.mu.Unlock()

	q.retryMu.Lock()
	q.stopping = true
	q.retryMu.Unlock()

	q.cancel()
	q.retries.Wait()
	close(q.jobs)
	q.wg.Wait()
	q.logger.Info("queue stopped")
}

// Running reports whether the queue accepts payloads.
func (q *Queue[T]) Running() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.running
}

// Enqueue buffers a payload, blocking while the buffer is full until ctx ends.
func (q *Queue[T]) Enqueue(ctx context.Context, payload T) error {
	return q.push(ctx, Job[T]{Payload: payload, Enqueued: time.Now().UTC()})
}

func (q *Queue[T]) push(ctx context.Context, job Job[T]) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if !q.running {
		return ErrNotStarted
	}
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ErrFull
	}
}

func (q *Queue[T]) work() {
	defer q.wg.Done()
	for job := range q.jobs {
		// Drained jobs still run after Stop; their context is detached from the
		// cancelled queue context.
		err := q.handler(context.WithoutCancel(q.ctx), job.Payload)
		if err != nil {
			q.fail(job, err)
		}
	}
}

func (q *Queue[T]) fail(job Job[T], err error) {
	job.Attempt++
	if job.Attempt > q.cfg.MaxRetries {
		q.logger.Error("job dropped after retries", zap.Int("attempts", job.Attempt), zap.Error(err))
		return
	}

	q.retryMu.Lock()
	if q.stopping {
		q.retryMu.Unlock()
		q.logger.Warn("retry abandoned on shutdown", zap.Int("attempt", job.Attempt), zap.Error(err))
		return
	}
	q.retries.Add(1)
	q.retryMu.Unlock()

	q.logger.Warn("job failed, retrying", zap.Int("attempt", job.Attempt), zap.Error(err))
	go func() {
		defer q.retries.Done()
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			q.logger.Warn("retry abandoned on shutdown")
		case <-timer.C:
			if err := q.push(q.ctx, job); err != nil {
				q.logger.Error("failed to requeue job", zap.Error(err))
			}
		}
	}()
}
