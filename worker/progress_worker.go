package worker // import "github.com/bookdenapp/bookden/worker"

import (
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/model"
	"github.com/bookdenapp/bookden/store"
	"go.uber.org/zap"
)

// ProgressWorker folds PageUnlocked events into the stored shelf.
type ProgressWorker struct {
	id    int
	store *store.Store
}

func (w *ProgressWorker) Run(c <-chan model.Job) {
	log.Debug("ProgressWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int32("user_id", job.UserID),
			zap.Int32("book_id", job.Event.BookID),
		)

		// A failed write is logged and abandoned, there is no retry
		// policy anywhere in the system.
		if _, err := w.store.ApplyPageUnlocked(job.Event); err != nil {
			log.Error("Error applying page unlocked event",
				zap.Int32("user_id", job.UserID),
				zap.Int32("book_id", job.Event.BookID),
				zap.Error(err),
			)
			continue
		}
	}
}
