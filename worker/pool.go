package worker // import "github.com/bookdenapp/bookden/worker"

import (
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/store"
)

// WorkPool accepts fire-and-forget jobs.
type WorkPool interface {
	Push(job model.Job)
}

// ProgressPool applies reading-progress events in the background. The
// caller never waits on the outcome, AdvancePage is best-effort by
// contract.
type ProgressPool struct {
	queue chan model.Job
}

// NewProgressPool creates a pool of background workers.
func NewProgressPool(store *store.Store, size int) *ProgressPool {
	pool := &ProgressPool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &ProgressWorker{id: i, store: store}
		go worker.Run(pool.queue)
	}

	return pool
}

func (p *ProgressPool) Push(job model.Job) {
	p.queue <- job
}
