package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Job is one unit of work. Jobs report failures through their own side
// channels; a job error never stops the pool.
type Job func(ctx context.Context) error

// Pool runs batches of jobs with bounded concurrency. The bound keeps the
// number of simultaneous record-store queries inside the store's connection
// limit.
type Pool struct {
	workers int
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes every job and returns when all have finished. Jobs observe
// ctx themselves; cancelling ctx does not abandon queued jobs, it only makes
// their queries fail fast.
func (p *Pool) Run(ctx context.Context, jobs []Job) {
	jobChan := make(chan Job)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, &wg, i+1, jobChan)
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)
	wg.Wait()
}

func (p *Pool) worker(ctx context.Context, wg *sync.WaitGroup, id int, jobs <-chan Job) {
	defer wg.Done()
	for job := range jobs {
		p.safeExecution(ctx, job, id)
	}
}

func (p *Pool) safeExecution(ctx context.Context, job Job, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in worker job", "worker", workerID, "panic", r)
		}
	}()

	if err := job(ctx); err != nil {
		slog.Debug("worker job returned error", "worker", workerID, "error", err)
	}
}
