package enforce

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gilesshaxted/karma/internal/metrics"
)

// Worker drains the job queue and runs the pipeline. Workers are independent;
// enforcement for different messages may interleave.
type Worker struct {
	queue    *JobQueue
	pipeline *Pipeline
	workerID int
	running  atomic.Bool
}

func NewWorker(queue *JobQueue, pipeline *Pipeline, workerID int) *Worker {
	return &Worker{
		queue:    queue,
		pipeline: pipeline,
		workerID: workerID,
	}
}

func (w *Worker) Start() {
	w.running.Store(true)
	w.runLoop()
}

func (w *Worker) runLoop() {
	for w.running.Load() {
		job, ok := w.queue.Dequeue()
		if !ok {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		metrics.QueueDepth.Set(float64(w.queue.Size()))
		w.pipeline.Handle(context.Background(), job)
	}
}

func (w *Worker) Stop() {
	w.running.Store(false)
}

func (w *Worker) IsRunning() bool {
	return w.running.Load()
}
