package parallel

import (
	"sync/atomic"
	"testing"
)

func TestExecuteAllRunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var ran atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { ran.Add(1) }
	}

	pool.ExecuteAll(tasks)
	if got := ran.Load(); got != 100 {
		t.Errorf("ran %d tasks, want 100", got)
	}
}

func TestExecuteAllEmptyBatch(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil) // must not block or panic
}

func TestDefaultWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if pool.Workers() < 1 {
		t.Errorf("Workers() = %d, want at least 1", pool.Workers())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool reports running after Close")
	}
}

func TestClosedPoolRunsBatchInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	// Every task still runs; a batch handed to a closed pool executes on
	// the caller instead of being dropped.
	var ran atomic.Int64
	tasks := make([]func(), 10)
	for i := range tasks {
		tasks[i] = func() { ran.Add(1) }
	}
	pool.ExecuteAll(tasks)
	if got := ran.Load(); got != 10 {
		t.Errorf("closed pool ran %d tasks, want 10", got)
	}
}

func TestTasksRunConcurrently(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Tasks block until every worker holds one, proving more than one
	// goroutine executes the batch.
	const n = 4
	barrier := make(chan struct{})
	arrived := make(chan struct{}, n)

	tasks := make([]func(), n)
	for i := range tasks {
		tasks[i] = func() {
			arrived <- struct{}{}
			<-barrier
		}
	}

	go func() {
		for range n {
			<-arrived
		}
		close(barrier)
	}()

	pool.ExecuteAll(tasks)
}
