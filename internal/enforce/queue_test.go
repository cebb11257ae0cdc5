package enforce

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilesshaxted/karma/internal/filters"
)

func testJob(id string) *Job {
	return &Job{
		Message:    filters.Message{ID: id, GuildID: "g1", ChannelID: "c1", AuthorID: "u1"},
		Infraction: filters.Infraction{Filter: "spam", Reason: "Spam detected."},
	}
}

func TestJobQueueFIFO(t *testing.T) {
	assert := assert.New(t)

	q := NewJobQueue(8)
	assert.True(q.Enqueue(testJob("a")))
	assert.True(q.Enqueue(testJob("b")))
	assert.True(q.Enqueue(testJob("c")))
	assert.Equal(uint32(3), q.Size())

	job, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal("a", job.Message.ID)

	job, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal("b", job.Message.ID)

	assert.Equal(uint32(1), q.Size())
}

func TestJobQueueEmpty(t *testing.T) {
	assert := assert.New(t)

	q := NewJobQueue(8)
	_, ok := q.Dequeue()
	assert.False(ok)
	assert.Equal(uint32(0), q.Size())
}

func TestJobQueueRejectsWhenFull(t *testing.T) {
	assert := assert.New(t)

	// one slot is sacrificed to distinguish full from empty
	q := NewJobQueue(4)
	for i := 0; i < 3; i++ {
		assert.True(q.Enqueue(testJob(fmt.Sprintf("m%d", i))))
	}
	assert.False(q.Enqueue(testJob("overflow")))
	assert.Equal(uint32(3), q.Size())

	// draining one slot frees capacity
	_, ok := q.Dequeue()
	require.True(t, ok)
	assert.True(q.Enqueue(testJob("m3")))
}

func TestJobQueueWrapAround(t *testing.T) {
	assert := assert.New(t)

	q := NewJobQueue(4)
	for cycle := 0; cycle < 10; cycle++ {
		id := fmt.Sprintf("m%d", cycle)
		require.True(t, q.Enqueue(testJob(id)))
		job, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(id, job.Message.ID)
	}
	assert.Equal(uint32(0), q.Size())
}

func TestJobQueueZeroSizeClamped(t *testing.T) {
	assert := assert.New(t)

	// a misconfigured queue size still yields a queue that can hold a job
	for _, size := range []uint32{0, 1} {
		q := NewJobQueue(size)
		assert.True(q.Enqueue(testJob("a")))

		job, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal("a", job.Message.ID)
	}
}

func TestJobQueueRoundsSizeUp(t *testing.T) {
	assert := assert.New(t)

	// size 5 rounds up to 8, usable capacity 7
	q := NewJobQueue(5)
	for i := 0; i < 7; i++ {
		assert.True(q.Enqueue(testJob(fmt.Sprintf("m%d", i))))
	}
	assert.False(q.Enqueue(testJob("overflow")))
}
