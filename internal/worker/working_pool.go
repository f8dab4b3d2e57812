package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Job is a unit of fire-and-forget work. Its error is logged, never returned
// to the submitter.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

var (
	ErrQueueFull   = errors.New("worker queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

type WorkingPool struct {
	NumWorkers int
	jobChan    chan Job

	mu      sync.RWMutex
	stopped bool
}

func NewWorkingPool(numWorkers int, queueSize int) *WorkingPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkingPool{
		NumWorkers: numWorkers,
		jobChan:    make(chan Job, queueSize),
	}
}

// SubmitJob enqueues without blocking. A full queue drops the job so request
// handlers never wait on side effects.
func (p *WorkingPool) SubmitJob(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobChan <- job:
		return nil
	default:
		slog.Warn("worker queue full, dropping job", "job", job.Name, "queue_size", cap(p.jobChan))
		return ErrQueueFull
	}
}

// Start runs the workers until ctx is cancelled, then drains the queued jobs
// and returns.
func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(&workerWg, i+1)
	}

	<-ctx.Done()

	slog.Info("worker pool shutdown signaled, closing job channel")
	p.mu.Lock()
	p.stopped = true
	close(p.jobChan)
	p.mu.Unlock()

	workerWg.Wait()
	slog.Info("all workers stopped")
}

func (p *WorkingPool) worker(wg *sync.WaitGroup, id int) {
	defer wg.Done()
	slog.Debug("worker started", "worker_id", id)

	// Queued jobs run with a fresh context so shutdown drains them.
	for job := range p.jobChan {
		p.safeExecution(context.Background(), job, id)
	}
	slog.Debug("worker exiting", "worker_id", id)
}

func (p *WorkingPool) safeExecution(ctx context.Context, job Job, workerID int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in job", "worker_id", workerID, "job", job.Name, "panic", r)
		}
	}()

	err = job.Run(ctx)
	if err != nil {
		slog.Error("job failed", "worker_id", workerID, "job", job.Name, "error", err)
		return err
	}
	slog.Debug("job finished", "worker_id", workerID, "job", job.Name)
	return nil
}
