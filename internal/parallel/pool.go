// Package parallel provides a small work-stealing worker pool used for
// CPU-side pixel conversion of large uploads.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs submitted tasks on a fixed set of goroutines. Each worker
// owns a queue and steals from the others when its own runs dry, which keeps
// the pool balanced when task costs vary.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers. Zero or
// negative means GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	mine := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(mine)
			return
		case task := <-mine:
			if task != nil {
				task()
			}
		default:
			if task := p.steal(id); task != nil {
				task()
				continue
			}
			select {
			case <-p.done:
				p.drain(mine)
				return
			case task := <-mine:
				if task != nil {
					task()
				}
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			if task != nil {
				task()
			}
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// ExecuteAll distributes tasks round-robin across the workers and waits for
// every task to finish. Tasks that cannot be queued because the pool is
// closing run inline on the caller, so no task in the batch is lost.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	if !p.running.Load() {
		for _, task := range tasks {
			task()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(tasks))

	for i, task := range tasks {
		task := task
		wrapped := func() {
			defer pending.Done()
			task()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			task()
			pending.Done()
		}
	}
	pending.Wait()
}

// Close stops the workers after the queued tasks drain. Idempotent.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the worker count.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }
