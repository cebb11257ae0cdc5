// Package enforce turns confirmed infractions into platform actions: delete
// the message, notify the author, record the audit case, and hand the user to
// the escalation tracker. Individual step failures are logged and never abort
// the remaining steps.
package enforce

import (
	"sync"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/filters"
)

// Job carries one confirmed infraction to the worker pool.
type Job struct {
	Message    filters.Message
	Infraction filters.Infraction
	Config     *config.GuildModeration
}

// JobQueue is a fixed-capacity ring. Enqueue fails when full rather than
// blocking the event handler; a dropped enforcement is logged by the caller.
type JobQueue struct {
	mu   sync.Mutex
	jobs []Job
	mask uint32
	head uint32
	tail uint32
}

func NewJobQueue(size uint32) *JobQueue {
	// one slot is reserved to tell full from empty, so 2 is the smallest
	// ring that can hold a job
	if size < 2 {
		size = 2
	}
	if size&(size-1) != 0 {
		size = nextPowerOf2(size)
	}
	return &JobQueue{
		jobs: make([]Job, size),
		mask: size - 1,
	}
}

func (q *JobQueue) Enqueue(job *Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	nextHead := (q.head + 1) & q.mask
	if nextHead == q.tail {
		return false
	}
	q.jobs[q.head] = *job
	q.head = nextHead
	return true
}

func (q *JobQueue) Dequeue() (*Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.tail == q.head {
		return nil, false
	}
	job := q.jobs[q.tail]
	q.tail = (q.tail + 1) & q.mask
	return &job, true
}

func (q *JobQueue) Size() uint32 {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= q.tail {
		return q.head - q.tail
	}
	return (q.mask + 1) - (q.tail - q.head)
}

func nextPowerOf2(n uint32) uint32 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}
