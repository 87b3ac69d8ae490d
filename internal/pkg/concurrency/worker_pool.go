package concurrency

import (
	"context"
	"sync"
	"time"

	"passwordAuditBackend/internal/core/domain"
)

type WorkerPool struct {
	workers    []*Worker
	tasks      chan Task
	results    chan Result
	numWorkers int
	metrics    *PoolMetrics
	wg         sync.WaitGroup
	stop       chan struct{}
	stopOnce   sync.Once
}

type Worker struct {
	id        int
	tasks     chan Task
	results   chan Result
	metrics   *WorkerMetrics
	isWorking bool
	mu        sync.RWMutex
}

type Task struct {
	ID       string
	Index    int
	Function func() (domain.AuditEntry, error)
	Timeout  time.Duration
}

type Result struct {
	TaskID   string
	Index    int
	Value    domain.AuditEntry
	Error    error
	Duration time.Duration
	WorkerID int
}

type PoolMetrics struct {
	ActiveWorkers  int
	CompletedTasks int64
	FailedTasks    int64
	TotalDuration  time.Duration
	AverageLatency time.Duration
	mu             sync.RWMutex
}

// PoolStats is a copy of PoolMetrics without the lock.
type PoolStats struct {
	Workers        int
	ActiveWorkers  int
	CompletedTasks int64
	FailedTasks    int64
	AverageLatency time.Duration
}

type WorkerMetrics struct {
	TasksCompleted int64
	TasksFailed    int64
	TotalDuration  time.Duration
	LastActive     time.Time
	mu             sync.RWMutex
}

// NewWorkerPool sizes both queues to queueSize. Callers that submit a whole
// batch up front should pass the batch length so Submit never blocks.
func NewWorkerPool(numWorkers int, queueSize int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	pool := &WorkerPool{
		workers:    make([]*Worker, numWorkers),
		tasks:      make(chan Task, queueSize),
		results:    make(chan Result, queueSize),
		numWorkers: numWorkers,
		metrics:    &PoolMetrics{},
		stop:       make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		pool.workers[i] = &Worker{
			id:      i,
			tasks:   pool.tasks,
			results: pool.results,
			metrics: &WorkerMetrics{
				LastActive: time.Now(),
			},
		}
	}

	return pool
}

func (p *WorkerPool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		p.wg.Add(1)
		go worker.start(ctx, &p.wg)
	}

	go p.collectMetrics(ctx)
}

func (p *WorkerPool) Submit(task Task) {
	p.tasks <- task
}

func (p *WorkerPool) Results() <-chan Result {
	return p.results
}

// Stop closes the task queue, waits for the workers and closes Results.
// No task may be submitted after Stop.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
		close(p.tasks)
		p.wg.Wait()
		p.updatePoolMetrics()
		close(p.results)
	})
}

func (p *WorkerPool) GetMetrics() PoolStats {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()

	return PoolStats{
		Workers:        p.numWorkers,
		ActiveWorkers:  p.metrics.ActiveWorkers,
		CompletedTasks: p.metrics.CompletedTasks,
		FailedTasks:    p.metrics.FailedTasks,
		AverageLatency: p.metrics.AverageLatency,
	}
}

func (w *Worker) start(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-w.tasks:
			if !ok {
				return
			}

			w.mu.Lock()
			w.isWorking = true
			w.mu.Unlock()

			startTime := time.Now()
			value, err := w.executeTask(ctx, task)
			duration := time.Since(startTime)

			w.updateMetrics(err == nil, duration)

			w.results <- Result{
				TaskID:   task.ID,
				Index:    task.Index,
				Value:    value,
				Error:    err,
				Duration: duration,
				WorkerID: w.id,
			}

			w.mu.Lock()
			w.isWorking = false
			w.mu.Unlock()
		}
	}
}

func (w *Worker) executeTask(ctx context.Context, task Task) (domain.AuditEntry, error) {
	var cancel context.CancelFunc
	if task.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	type outcome struct {
		value domain.AuditEntry
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		value, err := task.Function()
		done <- outcome{value, err}
	}()

	select {
	case <-ctx.Done():
		return domain.AuditEntry{}, ctx.Err()
	case out := <-done:
		return out.value, out.err
	}
}

func (w *Worker) updateMetrics(success bool, duration time.Duration) {
	w.metrics.mu.Lock()
	defer w.metrics.mu.Unlock()

	if success {
		w.metrics.TasksCompleted++
	} else {
		w.metrics.TasksFailed++
	}
	w.metrics.TotalDuration += duration
	w.metrics.LastActive = time.Now()
}

func (p *WorkerPool) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.updatePoolMetrics()
		}
	}
}

func (p *WorkerPool) updatePoolMetrics() {
	activeWorkers := 0
	var totalCompleted, totalFailed int64
	var totalDuration time.Duration

	for _, worker := range p.workers {
		worker.metrics.mu.RLock()
		totalCompleted += worker.metrics.TasksCompleted
		totalFailed += worker.metrics.TasksFailed
		totalDuration += worker.metrics.TotalDuration
		worker.metrics.mu.RUnlock()

		worker.mu.RLock()
		if worker.isWorking {
			activeWorkers++
		}
		worker.mu.RUnlock()
	}

	p.metrics.mu.Lock()
	p.metrics.ActiveWorkers = activeWorkers
	p.metrics.CompletedTasks = totalCompleted
	p.metrics.FailedTasks = totalFailed
	p.metrics.TotalDuration = totalDuration
	if total := totalCompleted + totalFailed; total > 0 {
		p.metrics.AverageLatency = totalDuration / time.Duration(total)
	}
	p.metrics.mu.Unlock()
}
