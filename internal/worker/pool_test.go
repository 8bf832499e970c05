package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsEveryJob(t *testing.T) {
	var ran atomic.Int64
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = func(_ context.Context) error {
			ran.Add(1)
			return nil
		}
	}

	NewPool(4).Run(context.Background(), jobs)

	assert.Equal(t, int64(20), ran.Load())
}

func TestPool_SurvivesPanickingJob(t *testing.T) {
	var ran atomic.Int64
	jobs := []Job{
		func(_ context.Context) error { panic("boom") },
		func(_ context.Context) error { ran.Add(1); return nil },
		func(_ context.Context) error { ran.Add(1); return nil },
	}

	NewPool(1).Run(context.Background(), jobs)

	assert.Equal(t, int64(2), ran.Load(), "jobs after a panic still run")
}

func TestPool_JobErrorDoesNotStopBatch(t *testing.T) {
	var ran atomic.Int64
	jobs := []Job{
		func(_ context.Context) error { return errors.New("query failed") },
		func(_ context.Context) error { ran.Add(1); return nil },
	}

	NewPool(2).Run(context.Background(), jobs)

	assert.Equal(t, int64(1), ran.Load())
}

func TestNewPool_ClampsWorkerCount(t *testing.T) {
	var ran atomic.Int64
	NewPool(0).Run(context.Background(), []Job{
		func(_ context.Context) error { ran.Add(1); return nil },
	})

	assert.Equal(t, int64(1), ran.Load())
}
